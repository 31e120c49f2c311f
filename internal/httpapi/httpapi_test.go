package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"autoapply-engine/internal/config"
	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/events"
	"autoapply-engine/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T) (Deps, chan string) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	var cfgVal atomic.Value
	cfgVal.Store(config.Config{})
	var applyStatus atomic.Value
	applyStatus.Store(ApplyStatus{})

	ran := make(chan string, 8)

	return Deps{
		DB:          db.Pool,
		Hub:         events.NewHub(),
		CfgVal:      &cfgVal,
		ApplyStatus: &applyStatus,
		RunActive:   new(atomic.Bool),
		Attempts:    &store.Attempts{DB: db.Pool},
		Screenshots: &store.Screenshots{DB: db.Pool},
		Users:       &store.Users{DB: db.Pool},
		Search: func(ctx context.Context, keyword string, remoteOnly bool, locations []string) []domain.JobListing {
			return []domain.JobListing{
				{JobID: "j1", Title: "Go Developer", Company: "Acme", ApplyLink: "https://x.test"},
				{JobID: "s1", Title: "Sample", Company: "Sample Co", IsSample: true},
			}
		},
		RunForUser: func(ctx context.Context, userID string) ([]domain.ApplicationAttempt, error) {
			ran <- userID
			return nil, nil
		},
		RunSweep: func(ctx context.Context, frequency string) {
			ran <- "sweep:" + frequency
		},
	}, ran
}

func TestSearchEndpoint(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?keyword=go", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results     []domain.JobListing `json:"results"`
		SampleCount int                 `json:"sample_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, 1, resp.SampleCount)
}

func TestSearchEndpointRequiresKeyword(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchForwardsLocations(t *testing.T) {
	var got []string
	h := SearchHandler{
		Search: func(ctx context.Context, keyword string, remoteOnly bool, locations []string) []domain.JobListing {
			got = locations
			return nil
		},
	}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/search?keyword=go&locations=Austin,+New+York+", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Austin", "New York"}, got)
}

func TestSearchMethodNotAllowed(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/search", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestApplyRun(t *testing.T) {
	deps, ran := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/apply/run",
		strings.NewReader(`{"user_id":"u1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case got := <-ran:
		assert.Equal(t, "u1", got)
	case <-time.After(2 * time.Second):
		t.Fatal("run never started")
	}
}

func TestApplyRunRejectsOverlappingRun(t *testing.T) {
	deps, _ := testDeps(t)
	started := make(chan struct{})
	block := make(chan struct{})
	deps.RunForUser = func(ctx context.Context, userID string) ([]domain.ApplicationAttempt, error) {
		close(started)
		<-block
		return nil, nil
	}
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/apply/run",
		strings.NewReader(`{"user_id":"u1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first run never started")
	}

	// Second request while the first is in flight is turned away.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/apply/run",
		strings.NewReader(`{"user_id":"u2"}`)))
	assert.Contains(t, rec.Body.String(), "already running")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apply/status", nil))
	assert.Contains(t, rec.Body.String(), `"running":true`)

	close(block)
	require.Eventually(t, func() bool {
		return !deps.RunActive.Load()
	}, 2*time.Second, 10*time.Millisecond, "run flag must clear after the run finishes")
}

func TestApplyRunRequiresUserID(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/apply/run",
		strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/apply/run",
		strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplySweepDefaultsToDaily(t *testing.T) {
	deps, ran := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/apply/sweep",
		strings.NewReader(`{}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case got := <-ran:
		assert.Equal(t, "sweep:daily", got)
	case <-time.After(2 * time.Second):
		t.Fatal("sweep never started")
	}
}

func TestApplyStatus(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apply/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var st ApplyStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.False(t, st.Running)
}

func TestAttemptsRequiresUserID(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attempts", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttemptsEmptyList(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attempts?user_id=u1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Attempts []domain.ApplicationAttempt `json:"attempts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Attempts)
}

func TestScreenshotNotFound(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screenshot/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScreenshotRoundTrip(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	key, err := deps.Screenshots.Save(context.Background(), data)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screenshot/"+key, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, data, rec.Body.Bytes())
}

func TestUsersPutAndGet(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	body := `{"settings":{"enabled":true,"job_keywords":["go"],"max_applications_per_day":3},
	          "profile":{"first_name":"Ada","last_name":"Lovelace"}}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/u1", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/u1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var u domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Ada", u.Profile.FirstName)
	assert.True(t, u.Settings.Enabled)
}

func TestUsersGetMissing(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/nobody", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	deps, _ := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestRequestIDMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	Chain(inner, RequestID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Caller-supplied id is echoed back.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec = httptest.NewRecorder()
	Chain(inner, RequestID).ServeHTTP(rec, req)
	assert.Equal(t, "abc123", rec.Header().Get("X-Request-ID"))
}

func TestRecoverMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Chain(inner, Recover).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}

func TestCorsPreflight(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	Chain(inner, Cors).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
