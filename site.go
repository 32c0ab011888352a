package docassist

// ExternalLinkPolicy decides what happens to links whose host differs
// from the crawl's seed host.
type ExternalLinkPolicy string

// External link policies.
const (
	// ExternalRewrite treats the link as a root-relative path on the seed
	// origin: https://other.com/x becomes https://seed.com/x.
	ExternalRewrite ExternalLinkPolicy = "rewrite"

	// ExternalDrop discards links to other hosts.
	ExternalDrop ExternalLinkPolicy = "drop"

	// ExternalKeep follows links to other hosts verbatim.
	ExternalKeep ExternalLinkPolicy = "keep"
)

// DefaultWaitCondition waits until the content container holds some text.
const DefaultWaitCondition = `() => {
	const container = document.querySelector('content-container');
	if (!container) return false;
	const text = container.innerText || '';
	return text.trim().length > 100;
}`

// SiteProfile describes how to crawl a particular documentation site.
type SiteProfile struct {
	ContentSelector  string             `yaml:"content_selector"`
	ExcludedSelector string             `yaml:"excluded_selector"`
	WaitCondition    string             `yaml:"wait_condition"`
	StripImages      bool               `yaml:"strip_images"`
	TitleSuffixes    []string           `yaml:"title_suffixes"`
	ExcludeMarkers   []string           `yaml:"exclude_markers"`
	ExternalLinks    ExternalLinkPolicy `yaml:"external_links"`
}

// DefaultSiteProfile returns the profile for the reference documentation portal.
func DefaultSiteProfile() SiteProfile {
	return SiteProfile{
		ContentSelector:  "content-container",
		ExcludedSelector: "footer",
		WaitCondition:    DefaultWaitCondition,
		StripImages:      true,
		TitleSuffixes:    []string{" · MaxPatrol 10 · Справочный портал"},
		ExcludeMarkers:   []string{"cookie"},
		ExternalLinks:    ExternalRewrite,
	}
}

// Validate returns an error if the profile contains invalid fields.
func (p *SiteProfile) Validate() error {
	switch p.ExternalLinks {
	case ExternalRewrite, ExternalDrop, ExternalKeep:
	case "":
		return Errorf(EINVALID, "external link policy required")
	default:
		return Errorf(EINVALID, "unknown external link policy %q", p.ExternalLinks)
	}
	return nil
}

// DiscoveryProfile returns the whole-page fetch profile used for link discovery.
func (p *SiteProfile) DiscoveryProfile() FetchProfile {
	return FetchProfile{
		ExcludedSelector: p.ExcludedSelector,
		WaitCondition:    p.WaitCondition,
		StripImages:      p.StripImages,
		BypassCache:      true,
	}
}

// ContentProfile returns the fetch profile scoped to the content region.
func (p *SiteProfile) ContentProfile() FetchProfile {
	fp := p.DiscoveryProfile()
	fp.ContentSelector = p.ContentSelector
	return fp
}
