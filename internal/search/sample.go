package search

import (
	"fmt"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/source/util"
)

// Known-good queries should never come back hard-empty when every board has
// an off day, so the aggregator pads thin results with clearly flagged
// placeholders. Callers must check IsSample before acting on these.
var sampleCompanies = []struct {
	name     string
	location string
}{
	{"TechFlow Systems", "Remote"},
	{"Bluegrid Labs", "Austin, TX"},
	{"Northbeam Software", "Remote"},
	{"Cascade Digital", "Seattle, WA"},
	{"Harborview Tech", "Remote"},
}

func sampleListings(keyword string, n int, now time.Time) []domain.JobListing {
	if n <= 0 {
		return nil
	}
	if n > len(sampleCompanies) {
		n = len(sampleCompanies)
	}

	out := make([]domain.JobListing, 0, n)
	for i := 0; i < n; i++ {
		co := sampleCompanies[i]
		title := fmt.Sprintf("%s Engineer", titleCase(keyword))
		out = append(out, domain.JobListing{
			JobID:          util.JobID(title, co.name, "sample"),
			Title:          title,
			Company:        co.name,
			Location:       co.location,
			Description:    fmt.Sprintf("Example listing for %q searches while live sources are thin.", keyword),
			ApplyLink:      "https://example.com/apply",
			PostedAt:       now.Add(-time.Duration(i+1) * time.Hour),
			IsRemote:       co.location == "Remote",
			EmploymentType: "full-time",
			Source:         "sample",
			Tags:           []string{keyword},
			IsSample:       true,
		})
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return "Software"
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
