// Package crawl provides documentation crawling orchestration.
// It walks a site breadth-first one depth level at a time, fetching each
// level concurrently under a shared throttle, and collects cleaned pages.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/fwojciec/docassist"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Crawler orchestrates the crawling of a documentation site.
type Crawler struct {
	Fetcher docassist.PageFetcher

	// Normalizer filters and rewrites discovered links.
	// Nil builds one from the seed URL and Profile.
	Normalizer *LinkNormalizer

	Profile     docassist.SiteProfile
	RateLimiter docassist.DomainLimiter // optional
	Robots      docassist.RobotsPolicy  // optional
	Logger      *slog.Logger            // optional
	Progress    ProgressFunc            // optional
	Config      Config
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Pages docassist.Pages

	// Failed lists URLs whose fetch attempts were exhausted.
	Failed []string

	// Disallowed lists URLs skipped by the robots policy.
	Disallowed []string

	Visited int
	Levels  int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Depth     int
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressLevelStarted ProgressType = iota
	ProgressPageFetched
	ProgressPageFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// pageResult is the combined outcome of the discovery and content fetches.
type pageResult struct {
	title   string
	content string
	links   []docassist.LinkRef
}

// Crawl fetches seedURL and every page reachable from it within
// Config.MaxDepth links. On cancellation it returns the pages collected so
// far together with the context error.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (*Result, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}

	normalizer := c.Normalizer
	if normalizer == nil {
		var err error
		if normalizer, err = NewLinkNormalizer(seedURL, c.Profile); err != nil {
			return nil, err
		}
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &run{
		crawler: c,
		logger:  logger,
		sem:     semaphore.NewWeighted(int64(c.Config.MaxConcurrency)),
	}
	r.retry = c.Config.Retry
	r.retry.Logger = logger

	frontier := NewFrontier(seedURL, c.Config.MaxDepth)
	result := &Result{Pages: make(docassist.Pages)}

	for frontier.Len() > 0 && ctx.Err() == nil {
		level := frontier.NextLevel()
		if c.Robots != nil {
			var blocked []string
			level, blocked = c.filterRobots(ctx, level)
			for _, u := range blocked {
				frontier.MarkVisited(u)
				logger.Info("page disallowed by robots.txt", "url", u)
			}
			result.Disallowed = append(result.Disallowed, blocked...)
		}
		if len(level) == 0 {
			continue
		}
		depth := level[0].Depth
		logger.Info("crawling level", "depth", depth, "pages", len(level))
		r.emit(ProgressEvent{Type: ProgressLevelStarted, Depth: depth, Total: len(level)})

		outcomes := r.fetchLevel(ctx, level)
		result.Levels++

		for _, t := range level {
			frontier.MarkVisited(t.URL)
		}
		for i, t := range level {
			out := outcomes[i]
			if out == nil {
				if ctx.Err() == nil {
					result.Failed = append(result.Failed, t.URL)
				}
				continue
			}
			result.Pages[t.URL] = docassist.PageRecord{
				Title:   CleanTitle(out.title, c.Profile.TitleSuffixes),
				Content: CleanText(out.content),
			}
			for _, link := range out.links {
				if u, ok := normalizer.Normalize(link); ok {
					frontier.Discover(u, t.Depth)
				}
			}
		}
	}

	result.Visited = frontier.VisitedCount()
	logger.Info("crawl finished",
		"pages", len(result.Pages),
		"failed", len(result.Failed),
		"levels", result.Levels,
	)
	r.emit(ProgressEvent{Type: ProgressFinished, Completed: len(result.Pages), Total: result.Visited})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// filterRobots splits level into targets the robots policy allows and the
// URLs it disallows. Each check is bounded by Config.FetchTimeout.
func (c *Crawler) filterRobots(ctx context.Context, level []Target) ([]Target, []string) {
	allowed := level[:0]
	var blocked []string
	for _, t := range level {
		if c.robotsAllowed(ctx, t.URL) {
			allowed = append(allowed, t)
		} else {
			blocked = append(blocked, t.URL)
		}
	}
	return allowed, blocked
}

func (c *Crawler) robotsAllowed(ctx context.Context, rawURL string) bool {
	if timeout := c.Config.FetchTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.Robots.Allowed(ctx, rawURL)
}

// run holds the per-crawl state shared by page tasks.
type run struct {
	crawler *Crawler
	logger  *slog.Logger
	retry   RetryPolicy
	sem     *semaphore.Weighted

	mu        sync.Mutex
	completed int
	total     int
}

// fetchLevel fetches every target of one level concurrently and returns
// the outcomes in target order. Failed targets have a nil outcome.
func (r *run) fetchLevel(ctx context.Context, level []Target) []*pageResult {
	r.mu.Lock()
	r.completed, r.total = 0, len(level)
	r.mu.Unlock()

	outcomes := make([]*pageResult, len(level))
	var wg sync.WaitGroup
	for i, t := range level {
		wg.Go(func() {
			out, err := RetryOr(ctx, r.retry, t.URL, (*pageResult)(nil), func(ctx context.Context) (*pageResult, error) {
				return r.fetchPage(ctx, t.URL)
			})
			outcomes[i] = out
			r.report(t, out, err)
		})
	}
	wg.Wait()
	return outcomes
}

// fetchPage holds one throttle slot while the discovery and content
// fetches for url run side by side.
func (r *run) fetchPage(ctx context.Context, rawURL string) (*pageResult, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.sem.Release(1)

	c := r.crawler
	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", rawURL, err)
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	var discovery, content *docassist.Page
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		discovery, err = r.fetch(gctx, rawURL, c.Profile.DiscoveryProfile())
		return err
	})
	g.Go(func() error {
		var err error
		content, err = r.fetch(gctx, rawURL, c.Profile.ContentProfile())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	title := discovery.Title
	if title == "" {
		title = content.Title
	}
	return &pageResult{
		title:   title,
		content: content.Content,
		links:   discovery.Links(),
	}, nil
}

func (r *run) fetch(ctx context.Context, rawURL string, profile docassist.FetchProfile) (*docassist.Page, error) {
	if timeout := r.crawler.Config.FetchTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	page, err := r.crawler.Fetcher.Fetch(ctx, rawURL, profile)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("fetch %s: no page returned", rawURL)
	}
	return page, nil
}

// report logs a finished page task and emits its progress event.
func (r *run) report(t Target, out *pageResult, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++

	event := ProgressEvent{
		Depth:     t.Depth,
		Completed: r.completed,
		Total:     r.total,
		URL:       t.URL,
	}
	switch {
	case out != nil:
		event.Type = ProgressPageFetched
		r.logger.Debug("page fetched", "url", t.URL, "depth", t.Depth)
	case err != nil:
		event.Type = ProgressPageFailed
		event.Error = err
	default:
		event.Type = ProgressPageFailed
		event.Error = fmt.Errorf("%s: attempts exhausted", t.URL)
		r.logger.Warn("page skipped", "url", t.URL, "depth", t.Depth, "attempts", r.retry.Attempts)
	}
	if r.crawler.Progress != nil {
		r.crawler.Progress(event)
	}
}

func (r *run) emit(event ProgressEvent) {
	if r.crawler.Progress == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.crawler.Progress(event)
}
