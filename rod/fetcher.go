package rod

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/cdpdoc"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation and rendering of one page.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements cdpdoc.Fetcher at compile time.
var _ cdpdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome. The browser is recycled
// every DefaultRecycleAfter pages since Chrome's memory only grows.
//
// Fetcher is safe for concurrent use. Close must be called when done.
type Fetcher struct {
	mu      sync.Mutex
	current *browser
	closed  bool

	timeout      time.Duration
	userAgent    string
	recycleAfter int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithRecycleAfter sets how many pages a browser serves before replacement.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.recycleAfter = n
		}
	}
}

// NewFetcher launches headless Chrome and returns a Fetcher driving it.
// Returns an error if Chrome cannot be found or started.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := launch()
	if err != nil {
		return nil, err
	}
	f.current = b
	return f, nil
}

// Fetch navigates to url and returns the HTML once the page has loaded.
// A main document status other than 200 is an EUNAVAILABLE error, the same
// as for plain HTTP fetching.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.release(b)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := b.rod.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", cdpdoc.Errorf(cdpdoc.EUNAVAILABLE, "opening page for %s: %v", url, err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", f.fail(ctx, url, err)
		}
	}

	var status int
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})
	if err := page.Navigate(url); err != nil {
		return "", f.fail(ctx, url, err)
	}
	wait()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", cdpdoc.Errorf(cdpdoc.EUNAVAILABLE, "HTTP %d for %s", status, url)
	}

	if err := page.WaitLoad(); err != nil {
		return "", f.fail(ctx, url, err)
	}
	html, err := page.HTML()
	if err != nil {
		return "", f.fail(ctx, url, err)
	}
	return html, nil
}

// Close shuts the browser down. Calling Close again is a no-op.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	f.current.retired = true
	return f.current.close()
}

// acquire returns the browser for the next page, replacing it first when it
// has served recycleAfter pages. A failed relaunch keeps the old browser.
func (f *Fetcher) acquire() (*browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "fetcher is closed")
	}
	if f.current.pages >= f.recycleAfter {
		if fresh, err := launch(); err == nil {
			old := f.current
			old.retired = true
			f.current = fresh
			if old.inflight == 0 {
				_ = old.close()
			}
		}
	}
	f.current.pages++
	f.current.inflight++
	return f.current, nil
}

// release marks a page of b as done and closes b once it is retired and idle.
func (f *Fetcher) release(b *browser) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b.inflight--
	if b.retired && b.inflight == 0 {
		_ = b.close()
	}
}

// fail maps a browser error to the caller's context error when that is the
// cause, else to EUNAVAILABLE.
func (f *Fetcher) fail(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return cdpdoc.Errorf(cdpdoc.EUNAVAILABLE, "rendering %s: %v", url, err)
}
