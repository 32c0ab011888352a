package mock

import (
	"context"

	"github.com/fwojciec/docassist"
)

var _ docassist.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of docassist.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string, profile docassist.FetchProfile) (*docassist.Page, error)
	CloseFn func() error
}

func (f *PageFetcher) Fetch(ctx context.Context, url string, profile docassist.FetchProfile) (*docassist.Page, error) {
	return f.FetchFn(ctx, url, profile)
}

func (f *PageFetcher) Close() error {
	return f.CloseFn()
}

var _ docassist.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docassist.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ docassist.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of docassist.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) bool {
	return p.AllowedFn(ctx, url)
}
