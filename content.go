package docassist

import "context"

// ExtractResult is the readable part of a page as found by an Extractor.
type ExtractResult struct {
	Title       string // from page metadata
	ContentHTML string // main content with navigation and chrome removed
}

// Extractor isolates the main content of a rendered HTML page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter renders HTML as Markdown. Relative links are resolved against
// pageURL when it is set.
type Converter interface {
	Convert(html, pageURL string) (string, error)
}

// PageParser turns rendered HTML into a Page.
type PageParser interface {
	// Parse extracts the title, markdown content and categorized links of
	// the page at pageURL according to profile.
	Parse(html, pageURL string, profile FetchProfile) (*Page, error)
}

// TokenCounter estimates how many model tokens a text occupies.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
