package weworkremotely

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/source"
	"autoapply-engine/internal/source/util"

	"github.com/PuerkitoBio/goquery"
)

const baseURL = "https://weworkremotely.com"

// Scraper parses the WWR search page HTML; there is no public JSON API.
type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 25 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "weworkremotely" }

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.JobListing, error) {
	u := fmt.Sprintf("%s/remote-jobs/search?term=%s", baseURL, url.QueryEscape(q.Keyword))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "AutoApply/1.0 (+local)")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("weworkremotely status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("weworkremotely parse html: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	seen := map[string]bool{}
	var out []domain.JobListing

	doc.Find("section.jobs li").Each(func(_ int, li *goquery.Selection) {
		if len(out) >= limit {
			return
		}

		a := li.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, "/remote-jobs/") {
			return
		}
		abs := href
		if strings.HasPrefix(href, "/") {
			abs = baseURL + href
		}
		if seen[abs] {
			return
		}
		seen[abs] = true

		title := util.CleanText(li.Find(".title").First().Text())
		company := util.CleanText(li.Find(".company").First().Text())
		region := util.CleanText(li.Find(".region").First().Text())
		if title == "" || company == "" {
			return
		}

		out = append(out, domain.JobListing{
			JobID:          util.JobID(title, company, s.Name()),
			Title:          title,
			Company:        company,
			Location:       util.NormalizeLocation(region),
			ApplyLink:      abs,
			PostedAt:       time.Now().UTC(), // listing page carries no parseable date
			IsRemote:       true,
			EmploymentType: "unknown",
			Source:         s.Name(),
		})
	})

	return out, nil
}
