package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		first    string
		contains []string
	}{
		{
			name:     "known keyword fans out",
			keyword:  "react",
			first:    "react",
			contains: []string{"reactjs", "frontend", "typescript"},
		},
		{
			name:     "input is trimmed and lowercased",
			keyword:  "  React ",
			first:    "react",
			contains: []string{"reactjs"},
		},
		{
			name:     "multi-word query expands per word",
			keyword:  "senior react dev",
			first:    "senior react dev",
			contains: []string{"reactjs", "front-end"},
		},
		{
			name:    "unknown keyword returns just itself",
			keyword: "cobol",
			first:   "cobol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.keyword)
			assert.NotEmpty(t, got)
			assert.Equal(t, tt.first, got[0], "original keyword must come first")
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}

			seen := map[string]bool{}
			for _, term := range got {
				assert.False(t, seen[term], "duplicate term %q", term)
				seen[term] = true
			}
		})
	}
}

func TestExpandEmpty(t *testing.T) {
	assert.Nil(t, Expand(""))
	assert.Nil(t, Expand("   "))
}

func TestMatchesAny(t *testing.T) {
	terms := []string{"golang", "backend"}

	assert.True(t, MatchesAny(terms, "Senior Golang Engineer"))
	assert.True(t, MatchesAny(terms, "BACKEND developer at Acme"))
	assert.False(t, MatchesAny(terms, "iOS Engineer"))
	assert.False(t, MatchesAny(nil, "anything"))
	assert.False(t, MatchesAny([]string{""}, "anything"))
}
