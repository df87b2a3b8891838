// Package rod provides a headless Chrome implementation of pricescout.Fetcher
// for shops that reject plain HTTP clients or render prices with JavaScript.
package rod

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pricescout"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultFetchTimeout bounds a single page load, including rendering.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent matches http.DefaultUserAgent so both fetchers present
// the same client identity.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Ensure Fetcher implements pricescout.Fetcher at compile time.
var _ pricescout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	userAgent string
	maxPages  int64
	stealth   bool
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the page load timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRecycleAfter sets how many pages the browser serves before it is
// replaced. Defaults to DefaultMaxPages.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithStealth injects the stealth evasion script into every page before
// navigation to hide common headless browser fingerprints.
func WithStealth(enabled bool) Option {
	return func(f *Fetcher) {
		f.stealth = enabled
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxPages:  DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to url and returns the rendered HTML together with the
// status of the main document response. Status classification matches
// the HTTP fetcher: 403 is EFORBIDDEN, any other non-2xx EHTTP, and
// navigation failures or timeouts ENETWORK.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pricescout.RawPage, error) {
	if f.closed.Load() {
		return nil, pricescout.Errorf(pricescout.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, pricescout.NewFetchError(url, 0, pricescout.ENETWORK, "%v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, pricescout.NewFetchError(url, 0, pricescout.ENETWORK, "opening page: %v", err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent,
		AcceptLanguage: "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	}); err != nil {
		return nil, f.navigationError(ctx, url, err)
	}
	if f.stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			return nil, f.navigationError(ctx, url, err)
		}
	}
	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		return nil, f.navigationError(ctx, url, err)
	}

	// Redirects do not emit a response event, so the first document
	// response is the final one.
	var resp *proto.NetworkResponse
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			resp = e.Response
			return true
		}
		return false
	})

	if err := page.Navigate(url); err != nil {
		return nil, f.navigationError(ctx, url, err)
	}
	waitDocument()
	if resp == nil {
		return nil, f.navigationError(ctx, url, ctx.Err())
	}

	status := resp.Status
	if code := pricescout.ClassifyStatus(status); code != "" {
		return nil, pricescout.NewFetchError(url, status, code, "HTTP %d", status)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, f.navigationError(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, f.navigationError(ctx, url, err)
	}

	return &pricescout.RawPage{
		URL:         url,
		FinalURL:    resp.URL,
		StatusCode:  status,
		ContentType: resp.MIMEType,
		Body:        html,
		Hash:        strconv.FormatUint(xxhash.Sum64String(html), 16),
	}, nil
}

// navigationError reports a browser failure as ENETWORK, preferring the
// context error once the fetch was canceled or timed out.
func (f *Fetcher) navigationError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return pricescout.NewFetchError(url, 0, pricescout.ENETWORK, "%v", err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
