package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\tb   c  "))
	assert.Equal(t, "a b", CleanText("a b"))
	assert.Equal(t, "", CleanText("   "))
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Location: Austin, TX", "Austin, TX"},
		{"Remote, Remote, USA", "Remote, USA"},
		{"  New York ,  NY ", "New York, NY"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLocation(tt.in), "input %q", tt.in)
	}
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Senior Go Engineer", StripHTML("<p>Senior <b>Go</b> Engineer</p>"))
	assert.Equal(t, "plain", StripHTML("plain"))
	assert.Equal(t, "", StripHTML("<br/><img src='x'>"))
}

func TestLooksRemote(t *testing.T) {
	assert.True(t, LooksRemote("Remote", "", ""))
	assert.True(t, LooksRemote("", "Go Engineer (Anywhere)", ""))
	assert.True(t, LooksRemote("", "", "work worldwide with us"))
	assert.False(t, LooksRemote("Austin, TX", "Go Engineer", "on-site role"))
}

func TestNormalizeEmploymentType(t *testing.T) {
	assert.Equal(t, "full-time", NormalizeEmploymentType("Full Time"))
	assert.Equal(t, "full-time", NormalizeEmploymentType("FULL_TIME"))
	assert.Equal(t, "part-time", NormalizeEmploymentType("part time"))
	assert.Equal(t, "contract", NormalizeEmploymentType("Freelance"))
	assert.Equal(t, "internship", NormalizeEmploymentType("Summer Intern"))
	assert.Equal(t, "unknown", NormalizeEmploymentType(""))
	assert.Equal(t, "seasonal", NormalizeEmploymentType("Seasonal"))
}

func TestJobID(t *testing.T) {
	a := JobID("Go Developer", "Acme", "remotive")
	b := JobID("  go   developer ", "ACME", "Remotive")
	assert.Equal(t, a, b, "id must be case and whitespace insensitive")
	assert.Len(t, a, 16)

	c := JobID("Go Developer", "Acme", "remoteok")
	assert.NotEqual(t, a, c, "source participates in the key")
}
