// Package rendering provides functionality to render CVs to HTML and PDF.
package rendering

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/types"
)

// DefaultRenderTimeout bounds browser startup plus rendering
const DefaultRenderTimeout = 30 * time.Second

// ChromeBackend prints HTML to PDF with headless Chrome over the DevTools
// protocol. Each call starts and tears down its own browser.
type ChromeBackend struct {
	// ExecPath is the browser binary. Empty lets chromedp search for one.
	ExecPath string
	// Timeout defaults to DefaultRenderTimeout
	Timeout time.Duration
	Logger  *zap.Logger
}

// Name returns the engine name
func (b *ChromeBackend) Name() string { return EngineChrome }

// PDF renders the document. Margins come from the @page rule written by
// ApplyHTMLStyling; Scale is forwarded as the print scale.
func (b *ChromeBackend) PDF(ctx context.Context, html string, opts types.PDFOptions) ([]byte, error) {
	o := (&opts).WithDefaults()
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if o.SinglePage || o.MinFontSize > 0 {
		logger.Debug("single-page hints are not applied by the chrome backend",
			zap.Bool("single_page", o.SinglePage),
			zap.Float64("min_font_size", o.MinFontSize))
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	width, height := o.PageSizeInches()
	var buf []byte

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(o.Margins.Top).
				WithMarginRight(o.Margins.Right).
				WithMarginBottom(o.Margins.Bottom).
				WithMarginLeft(o.Margins.Left)
			if o.Scale > 0 {
				params = params.WithScale(o.Scale)
			}
			data, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			buf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &RendererError{Backend: EngineChrome, Message: "timed out after " + timeout.String(), Cause: err}
		}
		return nil, &RendererError{Backend: EngineChrome, Message: "failed to print PDF", Cause: err}
	}

	logger.Debug("rendered PDF", zap.String("backend", EngineChrome), zap.Int("bytes", len(buf)))
	return buf, nil
}
