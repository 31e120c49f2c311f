package bot

import "regexp"

// Confirmation detection is heuristic text matching on the post-submit page.
// A miss is not a failure; it downgrades a click-success to
// submitted_unconfirmed.
var confirmPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)thank you for (applying|your application|your interest)`),
	regexp.MustCompile(`(?i)application (submitted|received|complete)`),
	regexp.MustCompile(`(?i)successfully (applied|submitted)`),
	regexp.MustCompile(`(?i)we('ve| have) received your application`),
	regexp.MustCompile(`(?i)your application has been (sent|submitted|received)`),
	regexp.MustCompile(`(?i)thanks for applying`),
}

func looksConfirmed(pageText string) bool {
	for _, re := range confirmPatterns {
		if re.MatchString(pageText) {
			return true
		}
	}
	return false
}
