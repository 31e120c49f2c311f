// Package tailor is the client side of the external resume-tailoring
// collaborator. The orchestrator falls back to the untailored resume
// whenever this service fails or times out.
package tailor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Request struct {
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`
	BaseResume     string `json:"base_resume"`
}

type Service interface {
	Tailor(ctx context.Context, req Request) (string, error)
}

// HTTPService posts the tailoring request to a local sidecar (typically an
// LLM proxy) and expects {"tailored": "..."} back.
type HTTPService struct {
	URL string
	hc  *http.Client
}

func NewHTTPService(url string, timeout time.Duration) *HTTPService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPService{
		URL: url,
		hc:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPService) Tailor(ctx context.Context, req Request) (string, error) {
	if s.URL == "" {
		return "", fmt.Errorf("tailor url not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	hreq, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	hreq.Header.Set("Content-Type", "application/json")

	res, err := s.hc.Do(hreq)
	if err != nil {
		return "", fmt.Errorf("tailor post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return "", fmt.Errorf("tailor status %d", res.StatusCode)
	}

	var out struct {
		Tailored string `json:"tailored"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("tailor decode: %w", err)
	}
	if strings.TrimSpace(out.Tailored) == "" {
		return "", fmt.Errorf("tailor returned empty text")
	}
	return out.Tailored, nil
}
