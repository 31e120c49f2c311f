package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/source"
	"autoapply-engine/internal/source/util"
)

const apiURL = "https://remoteok.com/api"

type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "remoteok" }

// The feed is a flat JSON array whose first element is a legal notice with a
// different shape, so every field is optional here.
type posting struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	URL         string      `json:"url"`
	ApplyURL    string      `json:"apply_url"`
	Date        string      `json:"date"` // RFC3339-ish
	SalaryMin   int         `json:"salary_min"`
	SalaryMax   int         `json:"salary_max"`
}

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.JobListing, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "AutoApply/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("remoteok status %d", res.StatusCode)
	}

	var postings []posting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("remoteok decode: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	keyword := strings.ToLower(util.CleanText(q.Keyword))

	var out []domain.JobListing
	for _, p := range postings {
		if len(out) >= limit {
			break
		}
		title := util.CleanText(p.Position)
		company := util.CleanText(p.Company)
		link := strings.TrimSpace(p.ApplyURL)
		if link == "" {
			link = strings.TrimSpace(p.URL)
		}
		if title == "" || company == "" || link == "" {
			continue // legal-notice element and malformed rows land here
		}

		// The feed has no search endpoint; filter client-side.
		if keyword != "" {
			blob := strings.ToLower(title + " " + p.Description + " " + strings.Join(p.Tags, " "))
			if !strings.Contains(blob, keyword) {
				continue
			}
		}

		posted := time.Now().UTC()
		if t, err := time.Parse(time.RFC3339, p.Date); err == nil {
			posted = t
		}

		out = append(out, domain.JobListing{
			JobID:          util.JobID(title, company, s.Name()),
			Title:          title,
			Company:        company,
			Location:       util.NormalizeLocation(p.Location),
			Description:    util.StripHTML(p.Description),
			SalaryMin:      p.SalaryMin,
			SalaryMax:      p.SalaryMax,
			ApplyLink:      link,
			PostedAt:       posted,
			IsRemote:       true, // board only lists remote roles
			EmploymentType: "unknown",
			Source:         s.Name(),
			Tags:           p.Tags,
		})
	}
	return out, nil
}
