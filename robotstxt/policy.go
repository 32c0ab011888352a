// Package robotstxt implements docassist.RobotsPolicy from robots.txt files.
package robotstxt

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/docassist"
	"github.com/temoto/robotstxt"
)

var _ docassist.RobotsPolicy = (*Policy)(nil)

// DefaultTimeout bounds a robots.txt request made by the default client.
const DefaultTimeout = 30 * time.Second

// Policy checks URLs against the robots.txt of their host. Each host's
// file is fetched once and cached for the lifetime of the Policy.
type Policy struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData // nil entry allows everything
}

// Option configures a Policy.
type Option func(*Policy)

// WithHTTPClient sets the client used to fetch robots.txt files. The client
// should carry a timeout: a host that never answers blocks every caller
// waiting on the policy.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Policy) {
		p.client = c
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Policy) {
		p.logger = logger
	}
}

// NewPolicy returns a Policy that matches rules for userAgent.
func NewPolicy(userAgent string, opts ...Option) *Policy {
	p := &Policy{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: userAgent,
		logger:    slog.New(slog.DiscardHandler),
		hosts:     make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Allowed reports whether rawURL may be fetched. URLs that cannot be parsed
// and hosts whose robots.txt cannot be retrieved are allowed.
func (p *Policy) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	data := p.rules(ctx, u)
	if data == nil {
		return true
	}
	return data.TestAgent(u.RequestURI(), p.userAgent)
}

// rules returns the cached robots.txt rules for the URL's host, fetching
// robots.txt on first use. The lock is held while fetching so concurrent
// callers share one request per host. A host that times out is cached as
// allow-all so it is not waited on again.
func (p *Policy) rules(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := u.Scheme + "://" + u.Host
	if data, ok := p.hosts[key]; ok {
		return data
	}

	data, err := p.fetch(ctx, key+"/robots.txt")
	if err != nil {
		p.logger.Warn("robots.txt unavailable", "host", u.Host, "err", err)
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
	}
	p.hosts[key] = data
	return data
}

func (p *Policy) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// FromResponse maps 4xx to allow-all and 5xx to disallow-all.
	return robotstxt.FromResponse(resp)
}
