// Package chrome drives a headless Chrome over the DevTools protocol via
// chromedp. Primary automation engine.
package chrome

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/chromedp"
)

type Options struct {
	Headless    bool
	StepTimeout time.Duration // per-action bound; default 10s
}

type Engine struct {
	opts        Options
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

func New(opts Options) *Engine {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = 10 * time.Second
	}
	return &Engine{opts: opts}
}

func (e *Engine) Name() string { return "chromedp" }

func (e *Engine) Start(ctx context.Context) error {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", e.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Run with no actions forces the browser process to launch now, so a
	// missing Chrome binary surfaces here instead of mid-attempt.
	startCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()
	if err := chromedp.Run(startCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return err
	}

	e.ctx = browserCtx
	e.cancelCtx = cancelCtx
	e.cancelAlloc = cancelAlloc
	return nil
}

func (e *Engine) Stop() error {
	if e.cancelCtx != nil {
		e.cancelCtx()
	}
	if e.cancelAlloc != nil {
		e.cancelAlloc()
	}
	e.ctx = nil
	return nil
}

func (e *Engine) step(ctx context.Context) (context.Context, context.CancelFunc) {
	d := e.opts.StepTimeout
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < d {
		d = time.Until(dl)
	}
	return context.WithTimeout(e.ctx, d)
}

func (e *Engine) Navigate(ctx context.Context, url string) bool {
	if e.ctx == nil {
		return false
	}
	sctx, cancel := e.step(ctx)
	defer cancel()

	err := chromedp.Run(sctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	return err == nil
}

func (e *Engine) FillField(ctx context.Context, selectors []string, value string) bool {
	if value == "" {
		return true
	}
	if e.ctx == nil {
		return false
	}

	for _, sel := range selectors {
		sctx, cancel := context.WithTimeout(e.ctx, 2*time.Second)
		err := chromedp.Run(sctx,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Clear(sel, chromedp.ByQuery),
			chromedp.SendKeys(sel, value, chromedp.ByQuery),
		)
		cancel()
		if err == nil {
			return true
		}
	}
	return false
}

func (e *Engine) ClickElement(ctx context.Context, selectors []string) bool {
	if e.ctx == nil {
		return false
	}
	for _, sel := range selectors {
		sctx, cancel := context.WithTimeout(e.ctx, 2*time.Second)
		err := chromedp.Run(sctx,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Click(sel, chromedp.ByQuery),
		)
		cancel()
		if err == nil {
			return true
		}
	}
	return false
}

func (e *Engine) Screenshot(ctx context.Context) ([]byte, error) {
	if e.ctx == nil {
		return nil, errors.New("engine not started")
	}
	sctx, cancel := e.step(ctx)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(sctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (e *Engine) PageText(ctx context.Context) (string, error) {
	if e.ctx == nil {
		return "", errors.New("engine not started")
	}
	sctx, cancel := e.step(ctx)
	defer cancel()

	var text string
	if err := chromedp.Run(sctx, chromedp.Text("body", &text, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return text, nil
}
