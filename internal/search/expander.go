package search

import "strings"

// Board-side search quality is wildly inconsistent, so one keyword fans out
// into a set of related terms and matching is done on our side.
var synonyms = map[string][]string{
	"react":      {"reactjs", "react.js", "frontend", "front-end", "javascript", "typescript", "next.js"},
	"frontend":   {"front-end", "react", "vue", "angular", "javascript", "typescript", "ui engineer"},
	"backend":    {"back-end", "server-side", "api", "golang", "java", "python", "node"},
	"fullstack":  {"full-stack", "full stack", "frontend", "backend"},
	"go":         {"golang", "go developer", "backend"},
	"golang":     {"go", "backend"},
	"python":     {"django", "flask", "fastapi", "backend"},
	"java":       {"spring", "spring boot", "kotlin", "backend"},
	"javascript": {"typescript", "node", "nodejs", "react", "frontend"},
	"node":       {"nodejs", "node.js", "javascript", "backend"},
	"devops":     {"sre", "site reliability", "platform engineer", "infrastructure", "kubernetes", "terraform"},
	"sre":        {"site reliability", "devops", "platform engineer"},
	"data":       {"data engineer", "data scientist", "analytics", "etl", "sql"},
	"ml":         {"machine learning", "deep learning", "ai", "data scientist"},
	"ai":         {"machine learning", "ml", "llm", "deep learning"},
	"mobile":     {"ios", "android", "react native", "flutter"},
	"ios":        {"swift", "mobile", "apple"},
	"android":    {"kotlin", "mobile"},
	"security":   {"infosec", "appsec", "security engineer", "penetration"},
	"qa":         {"quality assurance", "test engineer", "sdet", "automation"},
	"designer":   {"ux", "ui", "product designer", "figma"},
	"manager":    {"lead", "engineering manager", "team lead"},
	"cloud":      {"aws", "gcp", "azure", "kubernetes", "devops"},
	"rust":       {"systems", "backend"},
}

// Expand maps a search keyword to its related-term set. The original keyword
// is always the first element; everything is lowercased and deduped.
func Expand(keyword string) []string {
	base := strings.ToLower(strings.TrimSpace(keyword))
	if base == "" {
		return nil
	}

	seen := map[string]bool{base: true}
	out := []string{base}

	add := func(terms []string) {
		for _, t := range terms {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}

	if syn, ok := synonyms[base]; ok {
		add(syn)
	}
	// Multi-word queries also expand on each word ("senior react dev").
	for _, w := range strings.Fields(base) {
		if syn, ok := synonyms[w]; ok {
			add(syn)
		}
	}
	return out
}

// MatchesAny reports whether any term appears in the lowercased
// concatenation of the listing's searchable text. Substring, not exact.
func MatchesAny(terms []string, blob string) bool {
	blob = strings.ToLower(blob)
	for _, t := range terms {
		if t == "" {
			continue
		}
		if strings.Contains(blob, t) {
			return true
		}
	}
	return false
}
