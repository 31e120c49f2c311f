package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func NormalizeLocation(loc string) string {
	loc = CleanText(loc)
	if loc == "" {
		return ""
	}

	loc = strings.TrimPrefix(loc, "Location:")
	loc = strings.TrimPrefix(loc, "LOCATIONS:")
	loc = strings.TrimSpace(loc)

	parts := strings.Split(loc, ",")
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		p = CleanText(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// StripHTML is a cheap tag stripper for description blobs coming back as
// HTML fragments. Good enough for substring matching; not a sanitizer.
func StripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return CleanText(b.String())
}

func LooksRemote(location, title, desc string) bool {
	blob := strings.ToLower(strings.Join([]string{location, title, desc}, " "))
	return strings.Contains(blob, "remote") ||
		strings.Contains(blob, "anywhere") ||
		strings.Contains(blob, "worldwide")
}

func NormalizeEmploymentType(t string) string {
	l := strings.ToLower(CleanText(t))
	switch {
	case l == "":
		return "unknown"
	case strings.Contains(l, "full"):
		return "full-time"
	case strings.Contains(l, "part"):
		return "part-time"
	case strings.Contains(l, "contract") || strings.Contains(l, "freelance"):
		return "contract"
	case strings.Contains(l, "intern"):
		return "internship"
	default:
		return l
	}
}
