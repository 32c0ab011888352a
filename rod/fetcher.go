// Package rod provides a docassist.PageFetcher that renders pages in
// headless Chrome before parsing them.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docassist"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docassist.PageFetcher at compile time.
var _ docassist.PageFetcher = (*Fetcher)(nil)

// Fetcher renders pages with Chrome browser automation and hands the
// resulting HTML to a docassist.PageParser.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	parser  docassist.PageParser
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each fetch, including the wait condition.
// Zero leaves fetches bounded only by the caller's context.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher that renders pages in browsers provided by
// manager. The Fetcher owns manager and closes it on Close.
func NewFetcher(manager *BrowserManager, parser docassist.PageParser, opts ...Option) *Fetcher {
	f := &Fetcher{
		manager: manager,
		parser:  parser,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to url, waits for the profile's wait condition and
// parses the rendered HTML according to profile.
func (f *Fetcher) Fetch(ctx context.Context, url string, profile docassist.FetchProfile) (*docassist.Page, error) {
	if f.closed.Load() {
		return nil, docassist.Errorf(docassist.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	html, err := f.render(ctx, url, profile)
	if err != nil {
		return nil, err
	}
	return f.parser.Parse(html, url, profile)
}

func (f *Fetcher) render(ctx context.Context, url string, profile docassist.FetchProfile) (string, error) {
	browser, release, err := f.manager.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if profile.BypassCache {
		if err := (proto.NetworkSetCacheDisabled{CacheDisabled: true}).Call(page); err != nil {
			return "", fmt.Errorf("disable cache: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", ctxErr(ctx, fmt.Errorf("navigate %s: %w", url, err))
	}
	if err := page.WaitLoad(); err != nil {
		return "", ctxErr(ctx, fmt.Errorf("wait load %s: %w", url, err))
	}
	if profile.WaitCondition != "" {
		if err := page.Wait(rod.Eval(profile.WaitCondition)); err != nil {
			return "", ctxErr(ctx, fmt.Errorf("wait condition %s: %w", url, err))
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", ctxErr(ctx, fmt.Errorf("read HTML %s: %w", url, err))
	}
	return html, nil
}

// ctxErr prefers the context's error so callers can match it with errors.Is.
func ctxErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
