package adzuna

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

type Config struct {
	AppID   string
	AppKey  string
	Country string // two-letter code used in the API path, e.g. "us"
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	if cfg.Country == "" {
		cfg.Country = "us"
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "adzuna" }

type apiResponse struct {
	Results []posting `json:"results"`
}

type posting struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"` // RFC3339
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	ContractTime string `json:"contract_time"` // full_time / part_time
	Category     struct {
		Label string `json:"label"`
	} `json:"category"`
}

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.JobListing, error) {
	if s.cfg.AppID == "" || s.cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna credentials not configured")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	what := q.Keyword
	if q.RemoteOnly {
		what = strings.TrimSpace(what + " remote")
	}

	u := fmt.Sprintf(
		"https://api.adzuna.com/v1/api/jobs/%s/search/1?app_id=%s&app_key=%s&results_per_page=%d&what=%s&content-type=application/json",
		url.PathEscape(s.cfg.Country),
		url.QueryEscape(s.cfg.AppID),
		url.QueryEscape(s.cfg.AppKey),
		limit,
		url.QueryEscape(what),
	)

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
		return nil, fmt.Errorf("adzuna get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("adzuna status %d", res.StatusCode)
	}

	var ar apiResponse
	if err := json.NewDecoder(res.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("adzuna decode: %w", err)
	}

	out := make([]domain.JobListing, 0, len(ar.Results))
	for _, p := range ar.Results {
		title := util.CleanText(p.Title)
		company := util.CleanText(p.Company.DisplayName)
		if title == "" || company == "" || p.RedirectURL == "" {
			continue
		}

		posted := time.Now().UTC()
		if t, err := time.Parse(time.RFC3339, p.Created); err == nil {
			posted = t
		}

		loc := util.NormalizeLocation(p.Location.DisplayName)
		desc := util.CleanText(p.Description)

		var tags []string
		if p.Category.Label != "" {
			tags = append(tags, p.Category.Label)
		}

		out = append(out, domain.JobListing{
			JobID:          util.JobID(title, company, s.Name()),
			Title:          title,
			Company:        company,
			Location:       loc,
			Description:    desc,
			SalaryMin:      int(p.SalaryMin),
			SalaryMax:      int(p.SalaryMax),
			ApplyLink:      strings.TrimSpace(p.RedirectURL),
			PostedAt:       posted,
			IsRemote:       util.LooksRemote(loc, title, desc),
			EmploymentType: util.NormalizeEmploymentType(p.ContractTime),
			Source:         s.Name(),
			Tags:           tags,
		})
	}
	return out, nil
}
