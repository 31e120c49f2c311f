package httpapi

import (
	"context"
	"net/http"
	"strings"

	"autoapply-engine/internal/domain"
)

type SearchHandler struct {
	Search func(ctx context.Context, keyword string, remoteOnly bool, locations []string) []domain.JobListing
}

type searchResponse struct {
	Results     []domain.JobListing `json:"results"`
	SampleCount int                 `json:"sample_count"`
}

func (h SearchHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := strings.TrimSpace(q.Get("keyword"))
	if keyword == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_keyword", "keyword query parameter is required")
		return
	}
	remoteOnly := q.Get("remote_only") == "true" || q.Get("remote_only") == "1"

	// Comma-separated location preferences, e.g. ?locations=Austin,New+York
	var locations []string
	for _, part := range strings.Split(q.Get("locations"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			locations = append(locations, part)
		}
	}

	results := h.Search(r.Context(), keyword, remoteOnly, locations)

	resp := searchResponse{Results: results}
	for _, l := range results {
		if l.IsSample {
			resp.SampleCount++
		}
	}
	if resp.Results == nil {
		resp.Results = []domain.JobListing{}
	}
	writeJSON(w, resp)
}
