// Package slog provides logging decorators for docassist services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docassist"
)

// Ensure LoggingFetcher implements docassist.PageFetcher.
var _ docassist.PageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a PageFetcher with debug logging.
type LoggingFetcher struct {
	next   docassist.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docassist.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, profile docassist.FetchProfile) (page *docassist.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"scoped", profile.ContentSelector != "",
			"duration", time.Since(begin),
		}
		if page != nil {
			attrs = append(attrs, "bytes", len(page.Content), "links", len(page.Internal)+len(page.External))
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		f.logger.Debug("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url, profile)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
