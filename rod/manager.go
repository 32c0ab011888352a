package rod

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/docassist"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages served by one browser
// process before a fresh one is launched.
const DefaultMaxPages = 75

// launchFlags keep background tabs rendering at full speed while several
// pages load concurrently.
var launchFlags = []string{
	"disable-background-timer-throttling",
	"disable-backgrounding-occluded-windows",
	"disable-renderer-backgrounding",
	"disable-dev-shm-usage",
	"disable-hang-monitor",
}

// instance is one launched browser process and the number of pages
// currently leased from it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	leased   int
	retired  bool
	down     bool
}

func (in *instance) shutdown() error {
	if in.down {
		return nil
	}
	in.down = true
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// BrowserManager leases a shared Chrome process to concurrent fetches and
// replaces it after a fixed number of pages, since Chrome memory grows over
// a long crawl. A replaced process stays alive until its last lease is
// released, so in-flight pages are never torn down by a recycle.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	maxPages int
	bin      string
	headless bool
	logger   *slog.Logger

	mu        sync.Mutex
	current   *instance
	served    int  // pages leased from current
	launching bool // a replacement is starting outside mu
	closed    bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages one browser process serves before it is
// replaced. Values below 1 keep the default.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		if n > 0 {
			bm.maxPages = n
		}
	}
}

// WithBrowserBin uses the Chrome binary at path instead of locating or
// downloading one.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// WithHeadless controls whether the browser runs without a window.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithLogger reports browser launches and replacements to logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		bm.logger = logger
	}
}

// NewBrowserManager launches the first browser process. Close must be
// called to stop it.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		headless: true,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(bm)
	}

	in, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = in
	return bm, nil
}

// Acquire leases the current browser for one page. The returned release
// func must be called once the page is closed; calling it more than once
// is harmless.
//
// The caller that reaches the page limit launches the replacement without
// holding the lock; concurrent callers keep leasing the old browser until
// the new one is swapped in.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, errManagerClosed()
	}
	if bm.served >= bm.maxPages && !bm.launching {
		bm.launching = true
		bm.mu.Unlock()
		next, err := bm.launch()
		bm.mu.Lock()
		bm.launching = false
		bm.swap(next, err)
		if bm.closed {
			return nil, nil, errManagerClosed()
		}
	}

	in := bm.current
	in.leased++
	bm.served++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(in) })
	}
	return in.browser, release, nil
}

func (bm *BrowserManager) release(in *instance) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	in.leased--
	if in.retired && in.leased == 0 {
		if err := in.shutdown(); err != nil {
			bm.logger.Debug("close retired browser", "err", err)
		}
	}
}

func errManagerClosed() error {
	return docassist.Errorf(docassist.EINVALID, "browser manager is closed")
}

// swap installs a freshly launched browser process. On launch failure the
// current one keeps serving and the swap is attempted again on the next
// Acquire. A process launched after Close is shut down at once.
// Must be called with mu held.
func (bm *BrowserManager) swap(next *instance, err error) {
	if err != nil {
		bm.logger.Warn("browser recycle failed", "err", err)
		return
	}
	if bm.closed {
		_ = next.shutdown()
		return
	}

	old := bm.current
	bm.logger.Debug("browser recycled", "pages", bm.served, "in_flight", old.leased)
	bm.current = next
	bm.served = 0

	old.retired = true
	if old.leased == 0 {
		_ = old.shutdown()
	}
}

func (bm *BrowserManager) launch() (*instance, error) {
	l := launcher.New().Leakless(true).Headless(bm.headless)
	for _, flag := range launchFlags {
		l = l.Set(flag)
	}
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}

// Served returns the number of pages leased from the current browser
// process.
func (bm *BrowserManager) Served() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.served
}

// PID returns the process ID of the current browser launcher, or 0 once
// the manager is closed.
func (bm *BrowserManager) PID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.current.launcher.PID()
}

// Close stops the current browser process. Pages still leased from it fail.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	bm.current.retired = true
	return bm.current.shutdown()
}
