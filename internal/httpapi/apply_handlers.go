package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/events"
	"autoapply-engine/internal/orchestrator"
	"autoapply-engine/internal/store"
)

type ApplyHandler struct {
	ApplyStatus *atomic.Value // httpapi.ApplyStatus
	RunActive   *atomic.Bool
	Hub         *events.Hub
	RunForUser  func(ctx context.Context, userID string) ([]domain.ApplicationAttempt, error)
	RunSweep    func(ctx context.Context, frequency string)
}

type applyRunReq struct {
	UserID string `json:"user_id"`
}

func (h ApplyHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ApplyStatus.Load().(ApplyStatus)
	st.Running = h.RunActive.Load()
	writeJSON(w, st)
}

func (h ApplyHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req applyRunReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_user_id", "user_id is required")
		return
	}

	// CAS so two concurrent POSTs can't both win the not-running check.
	if !h.RunActive.CompareAndSwap(false, true) {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	st := h.ApplyStatus.Load().(ApplyStatus)
	h.ApplyStatus.Store(ApplyStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		defer h.RunActive.Store(false)
		attempts, err := h.RunForUser(context.Background(), req.UserID)

		now := time.Now().Format(time.RFC3339)
		next := h.ApplyStatus.Load().(ApplyStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastApplied = len(attempts)
		switch {
		case errors.Is(err, orchestrator.ErrQuotaExceeded):
			next.LastError = "daily application limit reached"
			next.LastOkAt = now
		case errors.Is(err, store.ErrUserNotFound):
			next.LastError = "user not found"
		case err != nil:
			next.LastError = err.Error()
		default:
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ApplyStatus.Store(next)

		h.Hub.Publish(events.MakeEvent("", "apply_run_finished", 1, map[string]any{
			"user_id":  req.UserID,
			"attempts": len(attempts),
		}))
	}()

	writeJSON(w, map[string]any{"ok": true})
}

type applySweepReq struct {
	Frequency string `json:"frequency"`
}

func (h ApplyHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	var req applySweepReq
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Frequency == "" {
		req.Frequency = domain.FreqDaily
	}

	go h.RunSweep(context.Background(), req.Frequency)

	writeJSON(w, map[string]any{"ok": true, "frequency": req.Frequency})
}
