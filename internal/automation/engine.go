// Package automation abstracts the low-level browser drivers the submission
// bot runs on. Two interchangeable engines implement Engine; the bot picks
// whichever one starts.
package automation

import (
	"context"
	"errors"
	"log"
)

// ErrUnavailable means neither engine could start a browser.
var ErrUnavailable = errors.New("no automation engine available")

// Engine is the capability surface the bot needs from a browser driver.
// Fill/click helpers return booleans, not errors: "selector not found" is an
// expected outcome the state machine advances on.
type Engine interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error

	Navigate(ctx context.Context, url string) bool
	// FillField tries selectors in order; first visible match wins. Empty
	// value is a no-op success.
	FillField(ctx context.Context, selectors []string, value string) bool
	ClickElement(ctx context.Context, selectors []string) bool
	Screenshot(ctx context.Context) ([]byte, error)
	PageText(ctx context.Context) (string, error)
}

// Factory produces fresh engines; one browser instance per attempt, never
// pooled.
type Factory func() (primary Engine, fallback Engine)

// Start attempts the primary engine, then the fallback. The caller owns
// Stop() on the returned engine.
func Start(ctx context.Context, primary, fallback Engine) (Engine, error) {
	if primary != nil {
		if err := primary.Start(ctx); err == nil {
			return primary, nil
		} else {
			log.Printf("[automation] %s failed to start: %v", primary.Name(), err)
		}
	}
	if fallback != nil {
		if err := fallback.Start(ctx); err == nil {
			return fallback, nil
		} else {
			log.Printf("[automation] %s failed to start: %v", fallback.Name(), err)
		}
	}
	return nil, ErrUnavailable
}
