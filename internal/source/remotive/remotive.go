package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/source"
	"autoapply-engine/internal/source/util"
)

const apiBase = "https://remotive.com/api/remote-jobs"

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

func (s *Scraper) Name() string { return "remotive" }

// Response schema is typically:
// { "job-count": N, "jobs": [...] }
// but we defensively parse only what we need.
type apiResponse struct {
	Jobs []posting `json:"jobs"`
}

type posting struct {
	ID             json.Number `json:"id"`
	URL            string      `json:"url"`
	Title          string      `json:"title"`
	CompanyName    string      `json:"company_name"`
	Category       string      `json:"category"`
	JobType        string      `json:"job_type"`
	Location       string      `json:"candidate_required_location"`
	Salary         string      `json:"salary"`
	Description    string      `json:"description"` // html
	Tags           []string    `json:"tags"`
	PublicationRaw string      `json:"publication_date"` // "2006-01-02T15:04:05"
}

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.JobListing, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	u := fmt.Sprintf("%s?search=%s&limit=%d", apiBase, url.QueryEscape(q.Keyword), limit)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "AutoApply/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remotive get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("remotive status %d", res.StatusCode)
	}

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("remotive decode: %w", err)
	}

	out := make([]domain.JobListing, 0, len(ar.Jobs))
	for _, p := range ar.Jobs {
		title := util.CleanText(p.Title)
		company := util.CleanText(p.CompanyName)
		if title == "" || company == "" || p.URL == "" {
			continue
		}

		posted := time.Now().UTC()
		if t, err := time.Parse("2006-01-02T15:04:05", p.PublicationRaw); err == nil {
			posted = t
		}

		loc := util.NormalizeLocation(p.Location)
		desc := util.StripHTML(p.Description)

		out = append(out, domain.JobListing{
			JobID:          util.JobID(title, company, s.Name()),
			Title:          title,
			Company:        company,
			Location:       loc,
			Description:    desc,
			ApplyLink:      strings.TrimSpace(p.URL),
			PostedAt:       posted,
			IsRemote:       true, // board only lists remote roles
			EmploymentType: util.NormalizeEmploymentType(p.JobType),
			Source:         s.Name(),
			Tags:           p.Tags,
		})
	}
	return out, nil
}
