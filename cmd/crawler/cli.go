package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Fetcher docassist.PageFetcher
	Store   docassist.PageStore
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
// Every setting can be given through the environment; flags override it.
type CLI struct {
	URL           string        `name:"url" env:"DOCS_URL" help:"Seed URL of the documentation site"`
	DataPath      string        `name:"data-path" env:"DATA_PATH" help:"JSON page store to merge results into"`
	MaxDepth      int           `name:"max-depth" env:"MAX_DEPTH" default:"1" help:"Maximum link distance from the seed"`
	MaxConcurrent int           `name:"max-concurrent" env:"MAX_CONCURRENT" default:"5" help:"Concurrent page fetch limit"`
	Retries       int           `name:"retries" env:"CRAWL_RETRIES" default:"2" help:"Fetch attempts per page"`
	RetryDelay    time.Duration `name:"retry-delay" env:"CRAWL_RETRY_DELAY" default:"1.5s" help:"Delay between fetch attempts"`
	FetchTimeout  time.Duration `name:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30s" help:"Timeout for a single fetch"`
	Engine        string        `name:"engine" env:"FETCH_ENGINE" enum:"browser,http" default:"browser" help:"Page fetch engine (browser, http)"`
	Extractor     string        `name:"extractor" env:"EXTRACTOR" enum:"trafilatura,readability" default:"trafilatura" help:"Main content extractor for profiles without a content region"`
	RPS           float64       `name:"rps" env:"CRAWL_RPS" default:"0" help:"Requests per second per domain (0 = unlimited)"`
	Profile       string        `name:"site-profile" env:"SITE_PROFILE" help:"YAML site profile"`
	ExternalLinks string        `name:"external-links" env:"EXTERNAL_LINKS" help:"External link policy (rewrite, drop, keep)"`
	RespectRobots bool          `name:"respect-robots" env:"RESPECT_ROBOTS" help:"Skip pages disallowed by robots.txt"`
	ChromeBin     string        `name:"chrome-bin" env:"CHROME_BIN" help:"Chrome or Chromium binary"`
	BrowserPages  int           `name:"browser-pages" env:"BROWSER_MAX_PAGES" default:"75" help:"Pages served by one browser process before it is restarted"`
	LogLevel      string        `name:"log-level" env:"LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)"`
}

// CrawlConfig validates the required settings and returns the crawl limits.
func (c *CLI) CrawlConfig() (crawl.Config, error) {
	if c.URL == "" {
		return crawl.Config{}, docassist.Errorf(docassist.EINVALID, "DOCS_URL is required")
	}
	if c.DataPath == "" {
		return crawl.Config{}, docassist.Errorf(docassist.EINVALID, "DATA_PATH is required")
	}

	cfg := crawl.DefaultConfig()
	cfg.MaxDepth = c.MaxDepth
	cfg.MaxConcurrency = c.MaxConcurrent
	cfg.Retry.Attempts = c.Retries
	cfg.Retry.Delay = c.RetryDelay
	cfg.FetchTimeout = c.FetchTimeout
	if c.RPS < 0 {
		return crawl.Config{}, docassist.Errorf(docassist.EINVALID, "CRAWL_RPS must not be negative")
	}
	if err := cfg.Validate(); err != nil {
		return crawl.Config{}, err
	}
	return cfg, nil
}

// SiteProfile loads the configured site profile and applies overrides.
func (c *CLI) SiteProfile() (docassist.SiteProfile, error) {
	profile, err := loadProfile(c.Profile)
	if err != nil {
		return docassist.SiteProfile{}, err
	}
	if c.ExternalLinks != "" {
		profile.ExternalLinks = docassist.ExternalLinkPolicy(c.ExternalLinks)
	}
	if err := profile.Validate(); err != nil {
		return docassist.SiteProfile{}, err
	}
	return profile, nil
}

// CrawlCmd crawls a site and merges the result into the page store.
type CrawlCmd struct {
	URL      string
	DataPath string
}
