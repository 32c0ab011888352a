package docassist

import "context"

// LinkRef is a raw anchor as reported by a PageFetcher.
type LinkRef struct {
	Href string
	Text string
}

// Page is a fetched and rendered documentation page.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown

	// Links found on the page, split by whether they share the page's host.
	Internal []LinkRef
	External []LinkRef
}

// Links returns the internal links followed by the external links.
func (p *Page) Links() []LinkRef {
	links := make([]LinkRef, 0, len(p.Internal)+len(p.External))
	links = append(links, p.Internal...)
	return append(links, p.External...)
}

// FetchProfile configures a single page fetch.
type FetchProfile struct {
	// ContentSelector scopes content extraction to a DOM region.
	// Empty means the whole page.
	ContentSelector string

	// ExcludedSelector removes a DOM region before extraction.
	ExcludedSelector string

	// WaitCondition is a JavaScript predicate, e.g. "() => true", that must
	// evaluate to true before the page is considered rendered.
	WaitCondition string

	StripImages bool
	BypassCache bool
}

// PageFetcher retrieves rendered pages.
// Implementations may use browser automation to handle JavaScript-rendered content.
type PageFetcher interface {
	// Fetch renders the URL according to profile and returns its title,
	// markdown content and categorized links.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, profile FetchProfile) (*Page, error)

	// Close releases fetcher resources.
	// Must be called when the PageFetcher is no longer needed.
	Close() error
}

// PageRecord is the persisted form of a crawled page.
type PageRecord struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Pages maps absolute page URLs to their records.
type Pages map[string]PageRecord

// MergeResult reports what a PageStore merge changed.
type MergeResult struct {
	Added   int
	Updated int
	Total   int // Pages in the store after the merge
}

// PageStore persists crawled pages across runs.
type PageStore interface {
	// Load returns the stored pages. A missing or empty store yields no pages.
	Load(ctx context.Context) (Pages, error)

	// Merge overlays pages onto the stored pages and writes the result back.
	// Pages with an existing URL replace the stored record.
	Merge(ctx context.Context, pages Pages) (*MergeResult, error)
}

// DomainLimiter provides per-domain rate limiting for fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// RobotsPolicy decides whether a URL may be crawled.
type RobotsPolicy interface {
	// Allowed reports whether url may be fetched. Implementations allow
	// URLs whose rules cannot be determined.
	Allowed(ctx context.Context, url string) bool
}
