package domain

import "time"

// JobListing is the canonical record every source adapter normalizes into.
// Immutable once it leaves the aggregator.
type JobListing struct {
	JobID          string    `json:"job_id"` // stable hash of title+company+source
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	SalaryMin      int       `json:"salary_min,omitempty"`
	SalaryMax      int       `json:"salary_max,omitempty"`
	ApplyLink      string    `json:"apply_link"`
	PostedAt       time.Time `json:"posted_at"`
	IsRemote       bool      `json:"is_remote"`
	EmploymentType string    `json:"employment_type"` // full-time/contract/unknown
	Source         string    `json:"source"`          // adapter name
	Tags           []string  `json:"tags"`
	IsSample       bool      `json:"is_sample"` // true only for synthetic fallback records
}
