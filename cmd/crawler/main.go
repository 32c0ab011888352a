package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/crawl"
	"github.com/fwojciec/docassist/fs"
	"github.com/fwojciec/docassist/goquery"
	"github.com/fwojciec/docassist/htmltomarkdown"
	dahttp "github.com/fwojciec/docassist/http"
	"github.com/fwojciec/docassist/readability"
	"github.com/fwojciec/docassist/robotstxt"
	"github.com/fwojciec/docassist/rod"
	daslog "github.com/fwojciec/docassist/slog"
	"github.com/fwojciec/docassist/trafilatura"
	"github.com/fwojciec/docassist/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the fetcher built from the CLI configuration.
	// Set for end-to-end testing.
	Fetcher docassist.PageFetcher

	// Store overrides the JSON store at DATA_PATH.
	Store docassist.PageStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crawler"),
		kong.Description("Crawl a documentation site into a JSON page store"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Everything is validated before a browser or network connection exists.
	cfg, err := cli.CrawlConfig()
	if err != nil {
		return err
	}
	profile, err := cli.SiteProfile()
	if err != nil {
		return err
	}
	normalizer, err := crawl.NewLinkNormalizer(cli.URL, profile)
	if err != nil {
		return err
	}

	logger, err := daslog.NewLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	store := m.Store
	if store == nil {
		store = fs.NewJSONStore(cli.DataPath)
	}
	deps.Store = daslog.NewLoggingStore(store, logger)

	fetcher := m.Fetcher
	if fetcher == nil {
		if fetcher, err = cli.newFetcher(logger); err != nil {
			return err
		}
	}
	deps.Fetcher = daslog.NewLoggingFetcher(fetcher, logger)
	defer deps.Fetcher.Close()

	deps.Crawler = &crawl.Crawler{
		Fetcher:    deps.Fetcher,
		Normalizer: normalizer,
		Profile:    profile,
		Logger:     logger,
		Config:     cfg,
	}
	if cli.RPS > 0 {
		deps.Crawler.RateLimiter = crawl.NewDomainLimiter(cli.RPS)
	}
	if cli.RespectRobots {
		deps.Crawler.Robots = robotstxt.NewPolicy(dahttp.DefaultUserAgent,
			robotstxt.WithHTTPClient(&http.Client{Timeout: cli.FetchTimeout}),
			robotstxt.WithLogger(logger),
		)
	}

	cmd := &CrawlCmd{URL: cli.URL, DataPath: cli.DataPath}
	return cmd.Run(deps)
}

// newFetcher builds the page fetcher for the configured engine.
func (c *CLI) newFetcher(logger *slog.Logger) (docassist.PageFetcher, error) {
	var extractor docassist.Extractor = trafilatura.NewExtractor()
	if c.Extractor == "readability" {
		extractor = readability.NewExtractor()
	}
	parser := goquery.NewParser(htmltomarkdown.NewConverter(), extractor)

	if c.Engine == "http" {
		return dahttp.NewFetcher(parser, dahttp.WithTimeout(c.FetchTimeout)), nil
	}

	opts := []rod.ManagerOption{rod.WithLogger(logger), rod.WithMaxPages(c.BrowserPages)}
	if c.ChromeBin != "" {
		opts = append(opts, rod.WithBrowserBin(c.ChromeBin))
	}
	manager, err := rod.NewBrowserManager(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed, or set CHROME_BIN): %w", err)
	}
	return rod.NewFetcher(manager, parser, rod.WithFetchTimeout(c.FetchTimeout)), nil
}

// loadProfile reads a site profile file or returns the default profile.
func loadProfile(path string) (docassist.SiteProfile, error) {
	if path == "" {
		return docassist.DefaultSiteProfile(), nil
	}
	return yaml.LoadSiteProfile(path)
}
