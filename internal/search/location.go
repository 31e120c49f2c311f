package search

import "strings"

// Classifier decides whether a raw location string is acceptable under a
// target-region/remote policy. Precedence: remote allow-list, then block
// list, then region/state matching, then accept. Defaulting to accept on
// ambiguity trades precision for recall on boards with garbage location
// strings.
type Classifier struct {
	// Substrings that short-circuit to accept.
	RemoteKeywords []string
	// Known-foreign country/city substrings that short-circuit to reject.
	Block []string
	// Region names that count as in-region ("united states", "usa", ...).
	Regions []string
	// Two-letter state abbreviations matched as ", XX" tokens.
	StateAbbrevs []string
}

var defaultRemoteKeywords = []string{
	"remote", "anywhere", "worldwide", "work from home", "wfh", "distributed",
}

var defaultRegions = []string{
	"united states", "usa", "u.s.", "us only", "north america", "americas",
}

var defaultStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID",
	"IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS",
	"MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK",
	"OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV",
	"WI", "WY",
}

// NewClassifier builds a classifier with sane US-centric defaults plus any
// extra block entries from config.
func NewClassifier(block []string) *Classifier {
	return &Classifier{
		RemoteKeywords: defaultRemoteKeywords,
		Block:          block,
		Regions:        defaultRegions,
		StateAbbrevs:   defaultStates,
	}
}

// IsRemote reports whether loc reads as a remote-friendly location.
func (c *Classifier) IsRemote(loc string) bool {
	l := strings.ToLower(strings.TrimSpace(loc))
	for _, kw := range c.RemoteKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

// Accept applies the policy to one raw location string.
func (c *Classifier) Accept(loc string) bool {
	l := strings.ToLower(strings.TrimSpace(loc))
	if l == "" {
		return true // no signal, keep it
	}

	if c.IsRemote(l) {
		return true
	}

	for _, b := range c.Block {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" && strings.Contains(l, b) {
			return false
		}
	}

	for _, r := range c.Regions {
		if strings.Contains(l, r) {
			return true
		}
	}
	for _, st := range c.StateAbbrevs {
		if strings.Contains(loc, ", "+st) || strings.HasSuffix(loc, " "+st) {
			return true
		}
	}

	// Ambiguous: keep. Recall beats precision here.
	return true
}
