package mock

import (
	"context"

	"github.com/fwojciec/docassist"
)

var (
	_ docassist.Extractor    = (*Extractor)(nil)
	_ docassist.Converter    = (*Converter)(nil)
	_ docassist.PageParser   = (*PageParser)(nil)
	_ docassist.TokenCounter = (*TokenCounter)(nil)
)

type Extractor struct {
	ExtractFn func(html string) (*docassist.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docassist.ExtractResult, error) {
	return e.ExtractFn(html)
}

type Converter struct {
	ConvertFn func(html, pageURL string) (string, error)
}

func (c *Converter) Convert(html, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}

type PageParser struct {
	ParseFn func(html, pageURL string, profile docassist.FetchProfile) (*docassist.Page, error)
}

func (p *PageParser) Parse(html, pageURL string, profile docassist.FetchProfile) (*docassist.Page, error) {
	return p.ParseFn(html, pageURL, profile)
}

type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
