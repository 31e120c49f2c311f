package emailalert

import (
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/source/util"

	"github.com/PuerkitoBio/goquery"
)

// extractJobs pulls (title, company, link) triples out of an alert email's
// HTML body. Alert digests are table soup; we key off job-view anchors and
// read whatever text sits inside them.
func extractJobs(raw string) []domain.JobListing {
	html := htmlPart(raw)
	if html == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var out []domain.JobListing

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !isJobLink(href) {
			return
		}
		link := canonicalJobLink(href)
		if link == "" || seen[link] {
			return
		}

		// Digest rows usually render "Title - Company · Location" inside
		// or right next to the anchor.
		text := util.CleanText(a.Text())
		if text == "" {
			text = util.CleanText(a.Parent().Text())
		}
		title, company, loc := splitAlertRow(text)
		if title == "" {
			return
		}
		seen[link] = true

		out = append(out, domain.JobListing{
			Title:     title,
			Company:   company,
			Location:  loc,
			ApplyLink: link,
			PostedAt:  time.Now().UTC(),
		})
	})

	return out
}

func isJobLink(href string) bool {
	l := strings.ToLower(href)
	return strings.Contains(l, "linkedin.com/jobs/view") ||
		strings.Contains(l, "linkedin.com/comm/jobs/view") ||
		strings.Contains(l, "indeed.com/viewjob") ||
		strings.Contains(l, "glassdoor.com/job-listing")
}

// canonicalJobLink strips tracking params so the same role in two digests
// dedupes to one URL.
func canonicalJobLink(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	u.Fragment = ""
	q := u.Query()
	keep := url.Values{}
	for _, k := range []string{"jk", "currentJobId"} {
		if v := q.Get(k); v != "" {
			keep.Set(k, v)
		}
	}
	u.RawQuery = keep.Encode()
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

func splitAlertRow(text string) (title, company, loc string) {
	// "Senior Go Engineer - Acme · Austin, TX" and close variants.
	rest := text
	for _, sep := range []string{" · ", " | "} {
		if i := strings.LastIndex(rest, sep); i >= 0 {
			loc = util.CleanText(rest[i+len(sep):])
			rest = rest[:i]
			break
		}
	}
	for _, sep := range []string{" - ", " – ", " at "} {
		if i := strings.Index(rest, sep); i >= 0 {
			title = util.CleanText(rest[:i])
			company = util.CleanText(rest[i+len(sep):])
			return
		}
	}
	title = util.CleanText(rest)
	return
}

// htmlPart walks the MIME structure of a raw RFC822 message and returns the
// first text/html body found, decoded if quoted-printable.
func htmlPart(raw string) string {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	return findHTML(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body, 0)
}

func findHTML(contentType, encoding string, body io.Reader, depth int) string {
	if depth > 4 {
		return ""
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/html" // headerless bodies are usually the html itself
	}

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		boundary := params["boundary"]
		if boundary == "" {
			return ""
		}
		mr := multipart.NewReader(body, boundary)
		for {
			part, err := mr.NextPart()
			if err != nil {
				return ""
			}
			got := findHTML(part.Header.Get("Content-Type"), part.Header.Get("Content-Transfer-Encoding"), part, depth+1)
			if got != "" {
				return got
			}
		}
	case mediaType == "text/html":
		r := body
		if strings.EqualFold(strings.TrimSpace(encoding), "quoted-printable") {
			r = quotedprintable.NewReader(body)
		}
		b, _ := io.ReadAll(io.LimitReader(r, 2<<20))
		return string(b)
	}
	return ""
}
