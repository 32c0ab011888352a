// Package http provides an HTTP-based implementation of docassist.PageFetcher
// for static sites that don't require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docassist"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxBodySize caps the size of a fetched page.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "docassist-crawler/1.0"

// Ensure Fetcher implements docassist.PageFetcher at compile time.
var _ docassist.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP requests.
// Unlike rod.Fetcher, it does not execute JavaScript, so wait conditions
// in the fetch profile are ignored.
type Fetcher struct {
	client    *http.Client
	parser    docassist.PageParser
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher that builds pages with parser.
func NewFetcher(parser docassist.PageParser, opts ...Option) *Fetcher {
	f := &Fetcher{
		parser:    parser,
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url and parses it according to profile.
func (f *Fetcher) Fetch(ctx context.Context, url string, profile docassist.FetchProfile) (*docassist.Page, error) {
	html, err := f.fetchHTML(ctx, url, profile)
	if err != nil {
		return nil, err
	}
	return f.parser.Parse(html, url, profile)
}

func (f *Fetcher) fetchHTML(ctx context.Context, url string, profile docassist.FetchProfile) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if profile.BypassCache {
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	ctype := resp.Header.Get("Content-Type")
	if !isText(ctype) {
		return "", docassist.Errorf(docassist.EINVALID, "%s: unsupported content type %q", url, ctype)
	}

	// Decode legacy encodings such as windows-1251 to UTF-8, going by the
	// header, a BOM or a <meta charset> in the first kilobyte.
	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBody), ctype)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}
	html, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(html), nil
}

// isText accepts responses that can hold a page: HTML, XHTML, other text
// types and responses without a declared type.
func isText(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "text/") || mt == "application/xhtml+xml"
}

// Close closes idle keep-alive connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
