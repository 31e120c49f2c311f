package httpapi

import (
	"net/http"
	"strings"

	"autoapply-engine/internal/store"
)

type ScreenshotHandler struct {
	Screenshots *store.Screenshots
}

func (h ScreenshotHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/screenshot/")
	if key == "" || strings.Contains(key, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_key", "expected /screenshot/{key}")
		return
	}

	data, err := h.Screenshots.Get(r.Context(), key)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if len(data) == 0 {
		WriteError(w, r, http.StatusNotFound, "not_found", "screenshot not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	_, _ = w.Write(data)
}
