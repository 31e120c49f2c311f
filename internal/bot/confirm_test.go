package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksConfirmed(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"thank you for applying", "Thank you for applying to Acme!", true},
		{"application submitted", "Your Application Submitted successfully.", true},
		{"application received", "application received - we'll be in touch", true},
		{"we have received", "We have received your application.", true},
		{"thanks for applying", "Thanks for applying!", true},
		{"successfully applied", "You have successfully applied.", true},
		{"unrelated page", "Sign in to continue", false},
		{"empty", "", false},
		{"job description still showing", "Apply for this position below", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksConfirmed(tt.text))
		})
	}
}
