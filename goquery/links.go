package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docassist"
)

// extractLinks collects the anchors under sel, resolved against base and
// split into links on the same host as base and links elsewhere.
// Links are deduplicated by resolved URL, keeping the first occurrence.
func extractLinks(sel *goquery.Selection, base *url.URL) (internal, external []docassist.LinkRef) {
	seen := make(map[string]struct{})
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.TrimSpace(href) == "" || isNonHTTPLink(href) {
			return
		}

		resolved, ok := resolveURL(base, href)
		if !ok {
			return
		}
		if _, dup := seen[resolved.String()]; dup {
			return
		}
		seen[resolved.String()] = struct{}{}

		link := docassist.LinkRef{
			Href: resolved.String(),
			Text: strings.Join(strings.Fields(a.Text()), " "),
		}
		if isSameHost(base, resolved) {
			internal = append(internal, link)
		} else {
			external = append(external, link)
		}
	})
	return internal, external
}

// resolveURL resolves href against base and strips the fragment.
// It reports false for unparseable hrefs, non-HTTP results and links
// back to the page itself.
func resolveURL(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}

	self := *base
	self.Fragment = ""
	self.RawFragment = ""
	if resolved.String() == self.String() {
		return nil, false
	}
	return resolved, true
}

// isSameHost reports whether u is on the host of base.
// Subdomains are considered different hosts.
func isSameHost(base, u *url.URL) bool {
	return strings.EqualFold(u.Host, base.Host)
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
