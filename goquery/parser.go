// Package goquery turns rendered page HTML into docassist pages: it scopes
// the content region, drops excluded regions and images, and classifies links.
package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docassist"
)

// Ensure Parser implements docassist.PageParser at compile time.
var _ docassist.PageParser = (*Parser)(nil)

// Parser builds a docassist.Page from rendered HTML.
type Parser struct {
	Converter docassist.Converter

	// Extractor locates the main content when a profile has no content
	// selector. Nil uses the whole body.
	Extractor docassist.Extractor
}

// NewParser returns a parser that converts content with conv.
func NewParser(conv docassist.Converter, ext docassist.Extractor) *Parser {
	return &Parser{Converter: conv, Extractor: ext}
}

// Parse extracts the title, markdown content and links of a page.
// It returns EINVALID when the profile's content region is missing, which
// usually means the page had not finished rendering.
func (p *Parser) Parse(rawHTML, pageURL string, profile docassist.FetchProfile) (*docassist.Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return nil, docassist.Errorf(docassist.EINVALID, "invalid page URL %q", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docassist.Errorf(docassist.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	if profile.ExcludedSelector != "" {
		doc.Find(profile.ExcludedSelector).Remove()
	}
	if profile.StripImages {
		doc.Find("img, picture, svg").Remove()
	}

	internal, external := extractLinks(doc.Selection, base)

	contentHTML, extractedTitle, err := p.contentHTML(doc, profile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pageURL, err)
	}
	if title == "" {
		title = extractedTitle
	}

	var content string
	if strings.TrimSpace(contentHTML) != "" {
		if content, err = p.Converter.Convert(contentHTML, pageURL); err != nil {
			return nil, fmt.Errorf("convert %s: %w", pageURL, err)
		}
	}

	return &docassist.Page{
		URL:      pageURL,
		Title:    title,
		Content:  strings.TrimSpace(content),
		Internal: internal,
		External: external,
	}, nil
}

// contentHTML returns the HTML to convert and, when an extractor was
// used, the title it found.
func (p *Parser) contentHTML(doc *goquery.Document, profile docassist.FetchProfile) (string, string, error) {
	if profile.ContentSelector != "" {
		region := doc.Find(profile.ContentSelector)
		if region.Length() == 0 {
			return "", "", docassist.Errorf(docassist.EINVALID, "content region %q not found", profile.ContentSelector)
		}
		var b strings.Builder
		var renderErr error
		region.EachWithBreak(func(_ int, s *goquery.Selection) bool {
			html, err := s.Html()
			if err != nil {
				renderErr = err
				return false
			}
			b.WriteString(html)
			return true
		})
		if renderErr != nil {
			return "", "", renderErr
		}
		return b.String(), "", nil
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", "", err
	}

	if p.Extractor != nil {
		full, err := doc.Html()
		if err != nil {
			return "", "", err
		}
		result, err := p.Extractor.Extract(full)
		if err == nil && strings.TrimSpace(result.ContentHTML) != "" {
			return result.ContentHTML, result.Title, nil
		}
	}

	return body, "", nil
}
