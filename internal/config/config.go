// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		CacheTTLMinutes   int `yaml:"cache_ttl_minutes" json:"cache_ttl_minutes"`
		MinResults        int `yaml:"min_results" json:"min_results"`
		PerSourceTimeoutS int `yaml:"per_source_timeout_seconds" json:"per_source_timeout_seconds"`
		LimitPerSource    int `yaml:"limit_per_source" json:"limit_per_source"`
	} `yaml:"search" json:"search"`

	Sources struct {
		Remotive       Toggle       `yaml:"remotive" json:"remotive"`
		Arbeitnow      Toggle       `yaml:"arbeitnow" json:"arbeitnow"`
		RemoteOK       Toggle       `yaml:"remoteok" json:"remoteok"`
		WeWorkRemotely Toggle       `yaml:"weworkremotely" json:"weworkremotely"`
		Adzuna         AdzunaSource `yaml:"adzuna" json:"adzuna"`
		EmailAlert     EmailSource  `yaml:"emailalert" json:"emailalert"`
	} `yaml:"sources" json:"sources"`

	Filters struct {
		LocationsBlock []string `yaml:"locations_block" json:"locations_block"`
	} `yaml:"filters" json:"filters"`

	Automation struct {
		Primary      string `yaml:"primary" json:"primary"` // chromedp | rod
		Headless     *bool  `yaml:"headless" json:"headless"`
		StepTimeoutS int    `yaml:"step_timeout_seconds" json:"step_timeout_seconds"`
		MaxBrowsers  int    `yaml:"max_browsers" json:"max_browsers"`
	} `yaml:"automation" json:"automation"`

	Apply struct {
		TailorURL      string `yaml:"tailor_url" json:"tailor_url"`
		TailorTimeoutS int    `yaml:"tailor_timeout_seconds" json:"tailor_timeout_seconds"`
	} `yaml:"apply" json:"apply"`
}

type Toggle struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type AdzunaSource struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Country string `yaml:"country" json:"country"` // api path code, e.g. "us"
	// app id/key live in the OS keyring, not here
}

type EmailSource struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	IMAPHost string `yaml:"imap_host" json:"imap_host"`
	IMAPPort int    `yaml:"imap_port" json:"imap_port"`
	Username string `yaml:"username" json:"username"`
	Mailbox  string `yaml:"mailbox" json:"mailbox"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Headless resolves the automation.headless tri-state; unset means true.
func (c Config) Headless() bool {
	if c.Automation.Headless == nil {
		return true
	}
	return *c.Automation.Headless
}
