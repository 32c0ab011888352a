package crawl

import (
	"time"

	"github.com/fwojciec/docassist"
)

// Default crawl settings.
const (
	DefaultMaxDepth       = 1
	DefaultMaxConcurrency = 5
	DefaultFetchTimeout   = 30 * time.Second
)

// Config holds the crawl limits.
type Config struct {
	// MaxDepth is the maximum link distance from the seed. 0 fetches only the seed.
	MaxDepth int

	// MaxConcurrency bounds the number of page tasks holding a fetch slot.
	// Each task runs its discovery and content fetches side by side, so up
	// to 2*MaxConcurrency Fetch calls may be in flight, at most
	// MaxConcurrency per profile.
	MaxConcurrency int

	Retry RetryPolicy

	// FetchTimeout bounds each individual fetch and each robots.txt check.
	// Zero disables the timeout.
	FetchTimeout time.Duration
}

// DefaultConfig returns the default crawl limits.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       DefaultMaxDepth,
		MaxConcurrency: DefaultMaxConcurrency,
		Retry:          DefaultRetryPolicy(),
		FetchTimeout:   DefaultFetchTimeout,
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return docassist.Errorf(docassist.EINVALID, "max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.MaxConcurrency < 1 {
		return docassist.Errorf(docassist.EINVALID, "max concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if c.Retry.Attempts < 1 {
		return docassist.Errorf(docassist.EINVALID, "retry attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Retry.Delay < 0 {
		return docassist.Errorf(docassist.EINVALID, "retry delay must not be negative")
	}
	if c.FetchTimeout < 0 {
		return docassist.Errorf(docassist.EINVALID, "fetch timeout must not be negative")
	}
	return nil
}
