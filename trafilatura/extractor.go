// Package trafilatura isolates the main content of documentation pages
// that have no dedicated content selector, using go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/docassist"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ docassist.Extractor = (*Extractor)(nil)

// Extractor keeps links and falls back to readability-style heuristics
// when trafilatura's own pass finds too little text. User comment threads
// are dropped.
type Extractor struct {
	opts trafilatura.Options
}

func NewExtractor() *Extractor {
	return &Extractor{opts: trafilatura.Options{
		EnableFallback:  true,
		IncludeLinks:    true,
		ExcludeComments: true,
	}}
}

// Extract returns the page's main content as HTML. Pages where nothing
// qualifies yield an empty ContentHTML rather than an error.
func (e *Extractor) Extract(rawHTML string) (*docassist.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docassist.Errorf(docassist.EINVALID, "empty HTML input")
	}

	res, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	out := &docassist.ExtractResult{Title: strings.TrimSpace(res.Metadata.Title)}
	if res.ContentNode != nil {
		var b strings.Builder
		if err := html.Render(&b, res.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = b.String()
	}
	return out, nil
}
