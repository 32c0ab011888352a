package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/crawl"
)

// Run executes the crawl. Pages collected before a cancellation are still
// merged into the store.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	status := newStatus(deps)
	deps.Crawler.Progress = func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressLevelStarted:
			status.println(fmt.Sprintf("  depth %d: %d pages", event.Depth, event.Total))
			status.update(fmt.Sprintf(" depth %d: 0/%d", event.Depth, event.Total))
		case crawl.ProgressPageFetched:
			status.update(fmt.Sprintf(" depth %d: %d/%d %s", event.Depth, event.Completed, event.Total, crawl.TruncateURL(event.URL, 60)))
		case crawl.ProgressPageFailed:
			status.println(fmt.Sprintf("  skip %s: %v", crawl.TruncateURL(event.URL, 80), event.Error))
		}
	}

	status.start()
	result, crawlErr := deps.Crawler.Crawl(deps.Ctx, c.URL)
	status.stop()
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docassist.ErrorMessage(crawlErr))
		return crawlErr
	}

	// The merge must complete even when the crawl was interrupted.
	merged, err := deps.Store.Merge(context.WithoutCancel(deps.Ctx), result.Pages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docassist.ErrorMessage(err))
		return err
	}

	if n := len(result.Disallowed); n > 0 {
		fmt.Fprintf(deps.Stderr, "  %d pages disallowed by robots.txt\n", n)
	}
	fmt.Fprintln(deps.Stdout, crawl.FormatSummary(c.DataPath, merged, len(result.Failed)))

	if crawlErr != nil {
		if errors.Is(crawlErr, context.Canceled) {
			fmt.Fprintln(deps.Stderr, "crawl interrupted, partial results saved")
		}
		return crawlErr
	}
	return nil
}

// status prints progress lines and, on a terminal, animates a spinner
// showing the current level.
type status struct {
	deps    *Dependencies
	spinner *spinner.Spinner // nil unless stderr is a file
}

func newStatus(deps *Dependencies) *status {
	s := &status{deps: deps}
	if f, ok := deps.Stderr.(*os.File); ok {
		s.spinner = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(f))
	}
	return s
}

func (s *status) start() {
	if s.spinner != nil {
		s.spinner.Start()
	}
}

func (s *status) stop() {
	if s.spinner != nil {
		s.spinner.Stop()
	}
}

func (s *status) update(suffix string) {
	if s.spinner == nil {
		return
	}
	s.spinner.Lock()
	s.spinner.Suffix = suffix
	s.spinner.Unlock()
}

func (s *status) println(line string) {
	if s.spinner != nil {
		s.spinner.Lock()
		defer s.spinner.Unlock()
	}
	fmt.Fprintln(s.deps.Stderr, line)
}
