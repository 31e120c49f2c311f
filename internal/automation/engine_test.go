package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	name     string
	startErr error
	started  bool
}

func (e *stubEngine) Name() string                    { return e.name }
func (e *stubEngine) Start(ctx context.Context) error { e.started = e.startErr == nil; return e.startErr }
func (e *stubEngine) Stop() error                     { return nil }

func (e *stubEngine) Navigate(ctx context.Context, url string) bool { return false }
func (e *stubEngine) FillField(ctx context.Context, selectors []string, value string) bool {
	return false
}
func (e *stubEngine) ClickElement(ctx context.Context, selectors []string) bool { return false }
func (e *stubEngine) Screenshot(ctx context.Context) ([]byte, error)            { return nil, nil }
func (e *stubEngine) PageText(ctx context.Context) (string, error)              { return "", nil }

func TestStartPrefersPrimary(t *testing.T) {
	primary := &stubEngine{name: "chromedp"}
	fallback := &stubEngine{name: "rod"}

	eng, err := Start(context.Background(), primary, fallback)
	require.NoError(t, err)
	assert.Equal(t, "chromedp", eng.Name())
	assert.False(t, fallback.started, "fallback must not start when primary works")
}

func TestStartFallsBack(t *testing.T) {
	primary := &stubEngine{name: "chromedp", startErr: errors.New("no chrome")}
	fallback := &stubEngine{name: "rod"}

	eng, err := Start(context.Background(), primary, fallback)
	require.NoError(t, err)
	assert.Equal(t, "rod", eng.Name())
}

func TestStartBothFail(t *testing.T) {
	primary := &stubEngine{name: "chromedp", startErr: errors.New("no chrome")}
	fallback := &stubEngine{name: "rod", startErr: errors.New("no rod")}

	_, err := Start(context.Background(), primary, fallback)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStartNilEngines(t *testing.T) {
	_, err := Start(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}
