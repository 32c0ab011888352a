// Package readability isolates main page content with go-readability, for
// sites where trafilatura drops too much of the page.
package readability

import (
	"strings"

	"github.com/fwojciec/docassist"
	"github.com/go-shiori/go-readability"
)

var _ docassist.Extractor = (*Extractor)(nil)

// minArticleChars is the text length readability needs before it accepts
// a candidate without relaxing its filters. Reference pages are often
// shorter than the library's news-article default.
const minArticleChars = 200

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's main content as HTML. A readability.Parser
// holds state while parsing, so each call gets its own.
func (e *Extractor) Extract(rawHTML string) (*docassist.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docassist.Errorf(docassist.EINVALID, "empty HTML input")
	}

	parser := readability.NewParser()
	parser.CharThresholds = minArticleChars
	article, err := parser.Parse(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	return &docassist.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
