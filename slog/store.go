package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docassist"
)

// Ensure LoggingStore implements docassist.PageStore.
var _ docassist.PageStore = (*LoggingStore)(nil)

// LoggingStore wraps a PageStore with logging.
type LoggingStore struct {
	next   docassist.PageStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next docassist.PageStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the number of pages loaded.
func (s *LoggingStore) Load(ctx context.Context) (pages docassist.Pages, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("store load",
			"pages", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Merge delegates to the wrapped store and logs the merge outcome.
func (s *LoggingStore) Merge(ctx context.Context, pages docassist.Pages) (result *docassist.MergeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"pages", len(pages), "duration", time.Since(begin)}
		if result != nil {
			attrs = append(attrs, "added", result.Added, "updated", result.Updated, "total", result.Total)
		}
		if err != nil {
			s.logger.Error("store merge", append(attrs, "err", err)...)
			return
		}
		s.logger.Info("store merge", attrs...)
	}(time.Now())
	return s.next.Merge(ctx, pages)
}
