package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/store"
)

type UsersHandler struct {
	Users *store.Users
}

func userIDFromPath(p string) string {
	id := strings.TrimPrefix(p, "/users/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

func (h UsersHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := userIDFromPath(r.URL.Path)
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "expected /users/{id}")
		return
	}

	u, err := h.Users.Get(r.Context(), id)
	if errors.Is(err, store.ErrUserNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, u)
}

func (h UsersHandler) PutByPath(w http.ResponseWriter, r *http.Request) {
	id := userIDFromPath(r.URL.Path)
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "expected /users/{id}")
		return
	}

	var u domain.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json: "+err.Error())
		return
	}
	u.ID = id // path wins

	if u.Settings.MaxApplicationsPerDay < 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_settings", "max_applications_per_day must be >= 0")
		return
	}

	if err := h.Users.Upsert(r.Context(), u); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, u)
}
