package fetch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/types"
)

// FetcherOptions configures a Fetcher
type FetcherOptions struct {
	Options
	// RatePerHost is the allowed requests per second per host; 0 disables throttling
	RatePerHost float64
	Burst       int
	// UseBrowser enables the headless fallback for pages with little static text
	UseBrowser     bool
	BrowserPath    string
	BrowserTimeout time.Duration
	Cache          *PageCache
}

// Fetcher retrieves pages with per-host throttling, optional caching and
// an optional headless browser fallback. It is safe for concurrent use.
type Fetcher struct {
	opts    FetcherOptions
	limiter *HostLimiter
	logger  *zap.Logger
	browser func(ctx context.Context, url string) (string, error)
}

// NewFetcher creates a Fetcher. A nil logger discards output.
func NewFetcher(opts FetcherOptions, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	f := &Fetcher{
		opts:    opts,
		limiter: NewHostLimiter(opts.RatePerHost, opts.Burst),
		logger:  logger,
	}
	f.browser = func(ctx context.Context, url string) (string, error) {
		return WithBrowser(ctx, url, opts.BrowserPath, opts.BrowserTimeout, logger)
	}
	return f
}

// Timeout returns the per-request HTTP timeout
func (f *Fetcher) Timeout() time.Duration {
	return f.opts.Timeout
}

// BrowserBudget is how long the headless fallback may run, settle included
func (f *Fetcher) BrowserBudget() time.Duration {
	timeout := f.opts.BrowserTimeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	return timeout + BrowserSettle
}

// Fetch retrieves a URL within the configured timeout. Failures are
// returned as *Error.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	return f.FetchWithin(ctx, urlStr, f.opts.Timeout)
}

// FetchWithin retrieves a URL, bounding the static request by timeout. The
// browser fallback is bounded separately by BrowserBudget, measured from
// when it starts, so a slow static fetch cannot starve it.
func (f *Fetcher) FetchWithin(ctx context.Context, urlStr string, timeout time.Duration) (*Result, error) {
	if _, err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	if f.opts.Cache != nil {
		cached, ok, err := f.opts.Cache.Get(ctx, urlStr)
		if err != nil {
			f.logger.Warn("page cache read failed", zap.String("url", urlStr), zap.Error(err))
		}
		if ok {
			f.logger.Debug("page cache hit", zap.String("url", urlStr))
			return cached, nil
		}
	}

	if timeout <= 0 {
		timeout = f.opts.Timeout
	}
	staticCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := f.limiter.Wait(staticCtx, urlStr); err != nil {
		kind := types.FetchNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			kind = types.FetchTimeout
		}
		return nil, &Error{URL: urlStr, Kind: kind, Message: "throttle wait aborted", Cause: err}
	}

	start := time.Now()
	result, err := URL(staticCtx, urlStr, &f.opts.Options)
	if err != nil {
		f.logger.Debug("fetch failed", zap.String("url", urlStr), zap.Error(err))
		return result, err
	}
	f.logger.Debug("fetched page",
		zap.String("url", urlStr),
		zap.Int("status", result.StatusCode),
		zap.Int("bytes", len(result.HTML)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if f.opts.UseBrowser && f.needsBrowser(urlStr, result.HTML) {
		browserCtx, cancelBrowser := context.WithTimeout(ctx, f.BrowserBudget())
		html, berr := f.browser(browserCtx, urlStr)
		cancelBrowser()
		if berr != nil {
			f.logger.Warn("browser fallback failed, keeping static HTML", zap.String("url", urlStr), zap.Error(berr))
		} else {
			result.HTML = html
			result.Rendered = true
		}
	}

	if f.opts.Cache != nil {
		if err := f.opts.Cache.Put(ctx, result); err != nil {
			f.logger.Warn("page cache write failed", zap.String("url", urlStr), zap.Error(err))
		}
	}
	return result, nil
}

// needsBrowser reports whether the static page carries too little text
func (f *Fetcher) needsBrowser(urlStr, html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return true
	}
	platform := DetectPlatform(urlStr)
	text := MainText(doc, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	return ShouldUseBrowser(text)
}
