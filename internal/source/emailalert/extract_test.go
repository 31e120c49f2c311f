package emailalert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertMessage = "From: LinkedIn Job Alerts <jobalerts-noreply@linkedin.com>\r\n" +
	"To: me@example.com\r\n" +
	"Subject: 3 new jobs for \"go developer\"\r\n" +
	"Content-Type: text/html; charset=UTF-8\r\n" +
	"\r\n" +
	`<html><body>
<table>
<tr><td><a href="https://www.linkedin.com/jobs/view/12345?refId=abc&trackingId=def">Senior Go Engineer - Acme · Austin, TX</a></td></tr>
<tr><td><a href="https://www.linkedin.com/comm/jobs/view/67890?trk=email">Backend Developer at Initech · Remote</a></td></tr>
<tr><td><a href="https://www.indeed.com/viewjob?jk=aabbcc&from=alert">Platform Engineer - Globex</a></td></tr>
<tr><td><a href="https://www.linkedin.com/jobs/view/12345?refId=zzz">Senior Go Engineer - Acme · Austin, TX</a></td></tr>
<tr><td><a href="https://example.com/unsubscribe">Unsubscribe</a></td></tr>
</table>
</body></html>`

func TestExtractJobs(t *testing.T) {
	jobs := extractJobs(alertMessage)
	require.Len(t, jobs, 3, "duplicate and non-job links must be dropped")

	assert.Equal(t, "Senior Go Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "Austin, TX", jobs[0].Location)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/12345", jobs[0].ApplyLink)

	assert.Equal(t, "Backend Developer", jobs[1].Title)
	assert.Equal(t, "Initech", jobs[1].Company)
	assert.Equal(t, "Remote", jobs[1].Location)

	assert.Equal(t, "Platform Engineer", jobs[2].Title)
	assert.Equal(t, "Globex", jobs[2].Company)
	assert.Contains(t, jobs[2].ApplyLink, "jk=aabbcc", "indeed job key param survives canonicalization")
}

func TestExtractJobsNotHTML(t *testing.T) {
	plain := "From: someone@example.com\r\n" +
		"Content-Type: text/plain\r\n\r\n" +
		"no links here"
	assert.Empty(t, extractJobs(plain))
	assert.Empty(t, extractJobs("not an email at all"))
}

func TestIsJobLink(t *testing.T) {
	assert.True(t, isJobLink("https://www.linkedin.com/jobs/view/123"))
	assert.True(t, isJobLink("https://www.indeed.com/viewjob?jk=abc"))
	assert.True(t, isJobLink("https://www.glassdoor.com/job-listing/x"))
	assert.False(t, isJobLink("https://www.linkedin.com/feed"))
	assert.False(t, isJobLink("https://example.com"))
}

func TestCanonicalJobLink(t *testing.T) {
	assert.Equal(t,
		"https://www.linkedin.com/jobs/view/123",
		canonicalJobLink("https://www.linkedin.com/jobs/view/123/?refId=a&trackingId=b#anchor"))
	assert.Equal(t,
		"https://www.indeed.com/viewjob?jk=abc",
		canonicalJobLink("https://www.indeed.com/viewjob?jk=abc&from=alert&utm_source=email"))
	assert.Equal(t, "", canonicalJobLink("not a url"))
	assert.Equal(t, "", canonicalJobLink("/relative/path"))
}

func TestSplitAlertRow(t *testing.T) {
	tests := []struct {
		in                  string
		title, company, loc string
	}{
		{"Senior Go Engineer - Acme · Austin, TX", "Senior Go Engineer", "Acme", "Austin, TX"},
		{"Backend Developer at Initech · Remote", "Backend Developer", "Initech", "Remote"},
		{"Platform Engineer - Globex", "Platform Engineer", "Globex", ""},
		{"Just A Title", "Just A Title", "", ""},
		{"SRE | Acme | Remote", "SRE | Acme", "", "Remote"},
	}
	for _, tt := range tests {
		title, company, loc := splitAlertRow(tt.in)
		assert.Equal(t, tt.title, title, "input %q", tt.in)
		assert.Equal(t, tt.company, company, "input %q", tt.in)
		assert.Equal(t, tt.loc, loc, "input %q", tt.in)
	}
}
