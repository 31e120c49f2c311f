// Package rodeng drives a browser with go-rod. Fallback engine for hosts
// where the chromedp launch path misbehaves.
package rodeng

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type Options struct {
	Headless    bool
	StepTimeout time.Duration // per-action bound; default 10s
}

type Engine struct {
	opts     Options
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func New(opts Options) *Engine {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = 10 * time.Second
	}
	return &Engine{opts: opts}
}

func (e *Engine) Name() string { return "rod" }

func (e *Engine) Start(ctx context.Context) error {
	l := launcher.New().Headless(e.opts.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return err
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return err
	}

	e.launcher = l
	e.browser = browser
	e.page = page
	return nil
}

func (e *Engine) Stop() error {
	var err error
	if e.browser != nil {
		err = e.browser.Close()
		e.browser = nil
		e.page = nil
	}
	if e.launcher != nil {
		e.launcher.Cleanup()
		e.launcher = nil
	}
	return err
}

func (e *Engine) Navigate(ctx context.Context, url string) bool {
	if e.page == nil {
		return false
	}
	pg := e.page.Timeout(e.opts.StepTimeout)
	if err := pg.Navigate(url); err != nil {
		return false
	}
	return pg.WaitLoad() == nil
}

func (e *Engine) FillField(ctx context.Context, selectors []string, value string) bool {
	if value == "" {
		return true
	}
	if e.page == nil {
		return false
	}

	for _, sel := range selectors {
		el, err := e.page.Timeout(2 * time.Second).Element(sel)
		if err != nil {
			continue
		}
		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}
		_ = el.SelectAllText() // typing then replaces any prefill
		if el.Input(value) == nil {
			return true
		}
	}
	return false
}

func (e *Engine) ClickElement(ctx context.Context, selectors []string) bool {
	if e.page == nil {
		return false
	}
	for _, sel := range selectors {
		el, err := e.page.Timeout(2 * time.Second).Element(sel)
		if err != nil {
			continue
		}
		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}
		if el.Click(proto.InputMouseButtonLeft, 1) == nil {
			return true
		}
	}
	return false
}

func (e *Engine) Screenshot(ctx context.Context) ([]byte, error) {
	if e.page == nil {
		return nil, errors.New("engine not started")
	}
	return e.page.Timeout(e.opts.StepTimeout).Screenshot(false, nil)
}

func (e *Engine) PageText(ctx context.Context) (string, error) {
	if e.page == nil {
		return "", errors.New("engine not started")
	}
	el, err := e.page.Timeout(e.opts.StepTimeout).Element("body")
	if err != nil {
		return "", err
	}
	return el.Text()
}
