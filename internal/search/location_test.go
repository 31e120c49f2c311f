package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierAccept(t *testing.T) {
	c := NewClassifier([]string{"London", "india"})

	tests := []struct {
		name string
		loc  string
		want bool
	}{
		{"empty keeps", "", true},
		{"whitespace keeps", "   ", true},
		{"remote accepts", "Remote", true},
		{"remote beats block list", "Remote - London", true},
		{"wfh accepts", "Work From Home", true},
		{"blocked city rejects", "London, UK", false},
		{"blocked country rejects", "Bangalore, India", false},
		{"region accepts", "United States", true},
		{"state abbreviation accepts", "Austin, TX", true},
		{"trailing state accepts", "Dallas TX", true},
		{"ambiguous accepts", "Somewhereville", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Accept(tt.loc))
		})
	}
}

func TestClassifierIsRemote(t *testing.T) {
	c := NewClassifier(nil)

	assert.True(t, c.IsRemote("Remote"))
	assert.True(t, c.IsRemote("100% remote, anywhere"))
	assert.True(t, c.IsRemote("Distributed team"))
	assert.False(t, c.IsRemote("Austin, TX"))
	assert.False(t, c.IsRemote(""))
}
