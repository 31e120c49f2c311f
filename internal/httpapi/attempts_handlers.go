package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/store"
)

type AttemptsHandler struct {
	Attempts *store.Attempts
}

func (h AttemptsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := strings.TrimSpace(q.Get("user_id"))
	if userID == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_user_id", "user_id query parameter is required")
		return
	}

	limit := 50
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			WriteError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be 1..500")
			return
		}
		limit = n
	}

	attempts, err := h.Attempts.ListRecent(r.Context(), userID, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if attempts == nil {
		attempts = []domain.ApplicationAttempt{}
	}
	writeJSON(w, map[string]any{"attempts": attempts})
}
