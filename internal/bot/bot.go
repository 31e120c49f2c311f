// Package bot drives unattended application submission against arbitrary
// third-party forms: platform detection, field filling, submit, and
// confirmation detection on top of whichever automation engine starts.
package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"autoapply-engine/internal/automation"
	"autoapply-engine/internal/domain"

	"github.com/google/uuid"
)

// ScreenshotStore persists captured page images and returns opaque handles.
type ScreenshotStore interface {
	Save(ctx context.Context, data []byte) (string, error)
}

type Options struct {
	NavTimeout  time.Duration // bound on the initial navigation; default 30s
	SettleDelay time.Duration // wait after submit before reading page; default 2s
}

type Bot struct {
	factory automation.Factory
	shots   ScreenshotStore
	opts    Options
	now     func() time.Time
}

func New(factory automation.Factory, shots ScreenshotStore, opts Options) *Bot {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	} else if opts.SettleDelay == 0 {
		opts.SettleDelay = 2 * time.Second
	}
	return &Bot{factory: factory, shots: shots, opts: opts, now: time.Now}
}

// Request is one submission try for (user, job).
type Request struct {
	UserID    string
	Job       domain.JobListing
	Profile   domain.Profile
	CoverText string // tailored resume/cover text typed into the letter box
}

// Apply runs the full attempt state machine. It always returns a complete
// attempt record: terminal status, whatever screenshots were captured, and
// the full debug log, success or failure.
func (b *Bot) Apply(ctx context.Context, req Request) domain.ApplicationAttempt {
	a := domain.ApplicationAttempt{
		ApplicationID: uuid.NewString(),
		UserID:        req.UserID,
		JobID:         req.Job.JobID,
		JobTitle:      req.Job.Title,
		Company:       req.Job.Company,
		ApplyLink:     req.Job.ApplyLink,
		Status:        domain.StatusInitial,
		CreatedAt:     b.now().UTC(),
	}
	dbg := func(format string, args ...any) {
		line := fmt.Sprintf("[%s] %s", b.now().UTC().Format("15:04:05.000"), fmt.Sprintf(format, args...))
		a.DebugLogs = append(a.DebugLogs, line)
	}

	primary, fallback := b.factory()
	eng, err := automation.Start(ctx, primary, fallback)
	if err != nil {
		dbg("no automation engine could start: %v", err)
		a.Status = domain.StatusFailed
		a.Message = "automation_unavailable"
		return a
	}
	a.ToolUsed = eng.Name()
	dbg("engine %s started", eng.Name())

	// Browser is scoped to this attempt; teardown is unconditional.
	defer func() {
		if err := eng.Stop(); err != nil {
			log.Printf("[bot] engine stop: %v", err)
		}
		dbg("engine stopped")
	}()

	navCtx, cancel := context.WithTimeout(ctx, b.opts.NavTimeout)
	ok := eng.Navigate(navCtx, req.Job.ApplyLink)
	cancel()
	if !ok {
		dbg("navigation to %s failed", req.Job.ApplyLink)
		a.Status = domain.StatusFailed
		a.Message = "navigation_failed"
		return a
	}
	a.Status = domain.StatusNavigated
	dbg("navigated to %s", req.Job.ApplyLink)
	b.capture(ctx, eng, &a, "initial page load", dbg)

	platform := DetectPlatform(req.Job.ApplyLink)
	a.Status = domain.StatusPlatformDetected
	dbg("platform detected: %s", platform)

	strat := BuildStrategy(platform, req.Profile, req.CoverText)
	nameFilled := false
	for _, f := range strat.Fields {
		if f.Value == "" {
			continue
		}
		if eng.FillField(ctx, f.Selectors, f.Value) {
			dbg("filled %s", f.Label)
			if f.Required {
				nameFilled = true
			}
		} else {
			dbg("could not fill %s", f.Label)
		}
	}
	if nameFilled {
		a.Status = domain.StatusFormFilled
	}
	b.capture(ctx, eng, &a, "post-fill", dbg)

	a.Status = domain.StatusSubmitAttempted
	clicked := eng.ClickElement(ctx, strat.Submit)
	if !clicked {
		dbg("no submit control found")
		a.Status = domain.StatusFailed
		a.Message = "submission_failed"
		return a
	}
	dbg("submit clicked")
	b.settle(ctx)
	b.capture(ctx, eng, &a, "post-submit", dbg)

	if !nameFilled {
		dbg("name field was never filled; treating submission as incomplete")
		a.Status = domain.StatusFailed
		a.Message = "form_fill_failed"
		return a
	}

	now := b.now().UTC()
	a.SubmittedAt = &now

	pageText, err := eng.PageText(ctx)
	if err != nil {
		dbg("could not read page text: %v", err)
	}
	if looksConfirmed(pageText) {
		dbg("confirmation phrase matched")
		a.Status = domain.StatusConfirmed
		return a
	}
	dbg("no confirmation phrase; soft success")
	a.Status = domain.StatusSubmittedUnconfirmed
	a.Message = "submitted_unconfirmed"
	return a
}

// capture grabs and stores a screenshot; failures are logged, never fatal,
// and the attempt keeps whatever subset was captured.
func (b *Bot) capture(ctx context.Context, eng automation.Engine, a *domain.ApplicationAttempt, tag string, dbg func(string, ...any)) {
	if b.shots == nil || len(a.Screenshots) >= 3 {
		return
	}
	data, err := eng.Screenshot(ctx)
	if err != nil {
		dbg("screenshot (%s) failed: %v", tag, err)
		return
	}
	handle, err := b.shots.Save(ctx, data)
	if err != nil {
		dbg("screenshot (%s) store failed: %v", tag, err)
		return
	}
	a.Screenshots = append(a.Screenshots, handle)
	dbg("screenshot captured: %s", tag)
}

func (b *Bot) settle(ctx context.Context) {
	if b.opts.SettleDelay <= 0 {
		return
	}
	t := time.NewTimer(b.opts.SettleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
