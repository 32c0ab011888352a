package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docassist"
)

// LinkNormalizer decides whether a discovered link is followed and turns
// accepted links into absolute URLs on the crawl's site.
type LinkNormalizer struct {
	origin   *url.URL
	markers  []string
	external docassist.ExternalLinkPolicy
}

// NewLinkNormalizer returns a normalizer for links found while crawling seedURL.
func NewLinkNormalizer(seedURL string, profile docassist.SiteProfile) (*LinkNormalizer, error) {
	u, err := url.Parse(seedURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, docassist.Errorf(docassist.EINVALID, "invalid seed URL %q", seedURL)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	markers := make([]string, 0, len(profile.ExcludeMarkers))
	for _, m := range profile.ExcludeMarkers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}

	return &LinkNormalizer{
		origin:   &url.URL{Scheme: u.Scheme, Host: u.Host},
		markers:  markers,
		external: profile.ExternalLinks,
	}, nil
}

// Normalize returns the absolute URL to follow for link.
// It reports false when the link is rejected.
func (n *LinkNormalizer) Normalize(link docassist.LinkRef) (string, bool) {
	if strings.TrimSpace(link.Text) == "" {
		return "", false
	}
	href := strings.TrimSpace(link.Href)
	if href == "" {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, m := range n.markers {
		if strings.Contains(lower, m) {
			return "", false
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	if u.Host != "" && strings.EqualFold(u.Hostname(), n.origin.Hostname()) {
		return href, true
	}

	if u.Host != "" {
		switch n.external {
		case docassist.ExternalKeep:
			return href, true
		case docassist.ExternalDrop:
			return "", false
		}
	}

	return n.rewrite(u), true
}

// rewrite treats u as a path on the seed origin.
func (n *LinkNormalizer) rewrite(u *url.URL) string {
	path := u.EscapedPath()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	s := n.origin.String() + path
	if u.RawQuery != "" {
		s += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		s += "#" + u.EscapedFragment()
	}
	return s
}
