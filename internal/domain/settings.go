package domain

// Schedule frequencies for the auto-apply sweep.
const (
	FreqHourly  = "hourly"
	Freq6Hours  = "6h"
	Freq12Hours = "12h"
	FreqDaily   = "daily"
)

// AutoApplySettings is owned by the caller; read-only to the engine core.
type AutoApplySettings struct {
	Enabled               bool     `json:"enabled" yaml:"enabled"`
	JobKeywords           []string `json:"job_keywords" yaml:"job_keywords"`
	Locations             []string `json:"locations" yaml:"locations"`
	RemoteOnly            bool     `json:"remote_only" yaml:"remote_only"`
	MaxApplicationsPerDay int      `json:"max_applications_per_day" yaml:"max_applications_per_day"`
	ResumeID              string   `json:"resume_id" yaml:"resume_id"`
	ScheduleFrequency     string   `json:"schedule_frequency" yaml:"schedule_frequency"` // hourly/6h/12h/daily
}

// Profile holds the applicant fields the submission bot types into forms.
type Profile struct {
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	Email       string `json:"email" yaml:"email"`
	Phone       string `json:"phone" yaml:"phone"`
	Location    string `json:"location" yaml:"location"`
	LinkedInURL string `json:"linkedin_url" yaml:"linkedin_url"`
	GitHubURL   string `json:"github_url" yaml:"github_url"`
}

// User bundles everything the orchestrator needs for one person.
type User struct {
	ID         string            `json:"id"`
	Settings   AutoApplySettings `json:"settings"`
	Profile    Profile           `json:"profile"`
	BaseResume string            `json:"base_resume"` // plain text, already extracted
}
