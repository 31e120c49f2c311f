package arbeitnow

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

const apiBase = "https://www.arbeitnow.com/api/job-board-api"

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

func (s *Scraper) Name() string { return "arbeitnow" }

type apiResponse struct {
	Data []posting `json:"data"`
}

type posting struct {
	Slug        string   `json:"slug"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"` // html
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"` // unix seconds
}

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.JobListing, error) {
	u := fmt.Sprintf("%s?search=%s", apiBase, url.QueryEscape(q.Keyword))

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
		return nil, fmt.Errorf("arbeitnow get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("arbeitnow status %d", res.StatusCode)
	}

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("arbeitnow decode: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	var out []domain.JobListing
	for _, p := range ar.Data {
		if len(out) >= limit {
			break
		}
		title := util.CleanText(p.Title)
		company := util.CleanText(p.CompanyName)
		if title == "" || company == "" || p.URL == "" {
			continue
		}
		if q.RemoteOnly && !p.Remote {
			continue
		}

		posted := time.Now().UTC()
		if p.CreatedAt > 0 {
			posted = time.Unix(p.CreatedAt, 0).UTC()
		}

		empType := "unknown"
		if len(p.JobTypes) > 0 {
			empType = util.NormalizeEmploymentType(p.JobTypes[0])
		}

		out = append(out, domain.JobListing{
			JobID:          util.JobID(title, company, s.Name()),
			Title:          title,
			Company:        company,
			Location:       util.NormalizeLocation(p.Location),
			Description:    util.StripHTML(p.Description),
			ApplyLink:      strings.TrimSpace(p.URL),
			PostedAt:       posted,
			IsRemote:       p.Remote,
			EmploymentType: empType,
			Source:         s.Name(),
			Tags:           p.Tags,
		})
	}
	return out, nil
}
