package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var c Config
	c.App.Port = 38471
	c.Search.CacheTTLMinutes = 15
	c.Search.MinResults = 5
	c.Search.PerSourceTimeoutS = 20
	c.Sources.Remotive.Enabled = true
	c.Automation.Primary = "chromedp"
	c.Automation.MaxBrowsers = 2
	return c
}

func TestNormalizeAndValidateOK(t *testing.T) {
	_, vr := NormalizeAndValidate(validConfig())
	assert.True(t, vr.OK(), "errors: %v", vr.Errors)
	assert.Empty(t, vr.Warnings)
}

func TestNormalizeAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.App.Port = 0 }},
		{"port too high", func(c *Config) { c.App.Port = 70000 }},
		{"negative ttl", func(c *Config) { c.Search.CacheTTLMinutes = -1 }},
		{"unknown automation engine", func(c *Config) { c.Automation.Primary = "selenium" }},
		{"negative browsers", func(c *Config) { c.Automation.MaxBrowsers = -1 }},
		{"email enabled without host", func(c *Config) {
			c.Sources.EmailAlert.Enabled = true
			c.Sources.EmailAlert.IMAPPort = 993
			c.Sources.EmailAlert.Username = "me@example.com"
		}},
		{"tailor url not http", func(c *Config) { c.Apply.TailorURL = "ftp://nope" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			_, vr := NormalizeAndValidate(c)
			assert.False(t, vr.OK())
		})
	}
}

func TestNormalizeAndValidateWarnings(t *testing.T) {
	c := validConfig()
	c.Sources.Remotive.Enabled = false
	_, vr := NormalizeAndValidate(c)
	require.True(t, vr.OK())
	assert.NotEmpty(t, vr.Warnings, "no enabled sources should warn")
}

func TestNormalizeTrimsAndDedupesBlockList(t *testing.T) {
	c := validConfig()
	c.Filters.LocationsBlock = []string{" London ", "london", "", "India"}
	out, vr := NormalizeAndValidate(c)
	require.True(t, vr.OK())
	assert.Equal(t, []string{"London", "India"}, out.Filters.LocationsBlock)
}

func TestNormalizeLowercasesEngine(t *testing.T) {
	c := validConfig()
	c.Automation.Primary = " ChromeDP "
	out, vr := NormalizeAndValidate(c)
	require.True(t, vr.OK())
	assert.Equal(t, "chromedp", out.Automation.Primary)
}
