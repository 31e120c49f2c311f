package bot

import "strings"

// Platform is the ATS family hosting an application form. Detection is
// URL-pattern only; page content is never needed to classify.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformGeneric    Platform = "generic"
)

func DetectPlatform(applyURL string) Platform {
	u := strings.ToLower(applyURL)
	switch {
	case strings.Contains(u, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(u, "lever.co"):
		return PlatformLever
	case strings.Contains(u, "myworkdayjobs.com") || strings.Contains(u, "workday.com"):
		return PlatformWorkday
	case strings.Contains(u, "ashbyhq.com"):
		return PlatformAshby
	default:
		return PlatformGeneric
	}
}
