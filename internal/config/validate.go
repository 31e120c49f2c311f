package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.LocationsBlock = trimList(out.Filters.LocationsBlock)
	out.Automation.Primary = strings.ToLower(strings.TrimSpace(out.Automation.Primary))

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.CacheTTLMinutes < 0 {
		res.addErr("search.cache_ttl_minutes must be >= 0")
	}
	if out.Search.MinResults < 0 {
		res.addErr("search.min_results must be >= 0")
	}
	if out.Search.PerSourceTimeoutS < 0 {
		res.addErr("search.per_source_timeout_seconds must be >= 0")
	} else if out.Search.PerSourceTimeoutS > 120 {
		res.addWarn("search.per_source_timeout_seconds is very high (%d); searches will feel stuck.", out.Search.PerSourceTimeoutS)
	}

	switch out.Automation.Primary {
	case "", "chromedp", "rod":
	default:
		res.addErr("automation.primary must be chromedp or rod, got %q", out.Automation.Primary)
	}
	if out.Automation.MaxBrowsers < 0 {
		res.addErr("automation.max_browsers must be >= 0")
	} else if out.Automation.MaxBrowsers > 8 {
		res.addWarn("automation.max_browsers=%d will eat a lot of memory.", out.Automation.MaxBrowsers)
	}

	if !out.Sources.Remotive.Enabled && !out.Sources.Arbeitnow.Enabled &&
		!out.Sources.RemoteOK.Enabled && !out.Sources.WeWorkRemotely.Enabled &&
		!out.Sources.Adzuna.Enabled && !out.Sources.EmailAlert.Enabled {
		res.addWarn("no sources enabled; searches will only ever return sample listings.")
	}

	// email required fields if enabled (password lives in the keychain)
	if out.Sources.EmailAlert.Enabled {
		e := out.Sources.EmailAlert
		if strings.TrimSpace(e.IMAPHost) == "" {
			res.addErr("sources.emailalert.imap_host is required when enabled")
		}
		if e.IMAPPort == 0 {
			res.addErr("sources.emailalert.imap_port is required when enabled")
		}
		if strings.TrimSpace(e.Username) == "" {
			res.addErr("sources.emailalert.username is required when enabled")
		}
	}

	if out.Apply.TailorURL != "" && !strings.HasPrefix(out.Apply.TailorURL, "http") {
		res.addErr("apply.tailor_url must be an http(s) URL")
	}

	return out, res
}
