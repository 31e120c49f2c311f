// Package emailalert ingests job-alert emails (LinkedIn-style digests) from
// an IMAP mailbox and normalizes the linked roles into canonical listings.
package emailalert

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/source"
	"autoapply-engine/internal/source/util"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

type Config struct {
	IMAPHost string
	IMAPPort int
	Username string
	Password string
	Mailbox  string // defaults to INBOX
	MaxMails int    // unseen messages per run; defaults to 25
}

type Scraper struct {
	cfg Config
}

func New(cfg Config) *Scraper {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.MaxMails <= 0 {
		cfg.MaxMails = 25
	}
	return &Scraper{cfg: cfg}
}

func (s *Scraper) Name() string { return "emailalert" }

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.JobListing, error) {
	if s.cfg.IMAPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return nil, errors.New("emailalert: imap host/username/password required")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.IMAPHost, s.cfg.IMAPPort)
	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: s.cfg.IMAPHost},
	})
	if err != nil {
		return nil, fmt.Errorf("emailalert dial tls: %w", err)
	}
	defer func() {
		if err := c.Logout().Wait(); err != nil {
			log.Printf("[emailalert] logout: %v", err)
		}
		_ = c.Close()
	}()

	// Best-effort close on context cancel.
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(s.cfg.Username, s.cfg.Password).Wait(); err != nil {
		return nil, fmt.Errorf("emailalert login: %w", err)
	}
	if _, err := c.Select(s.cfg.Mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return nil, fmt.Errorf("emailalert select %s: %w", s.cfg.Mailbox, err)
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   time.Now().AddDate(0, 0, -14),
	}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("emailalert uid search: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	// Newest first.
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	if len(uids) > s.cfg.MaxMails {
		uids = uids[:s.cfg.MaxMails]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	var out []domain.JobListing
	var seenUIDs []imap.UID

	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return out, fmt.Errorf("emailalert fetch collect: %w", err)
		}

		subject := ""
		from := ""
		if buf.Envelope != nil {
			subject = buf.Envelope.Subject
			if len(buf.Envelope.From) > 0 {
				from = buf.Envelope.From[0].Addr()
			}
		}
		if !looksLikeJobAlert(subject, from) {
			continue
		}

		raw := buf.FindBodySection(bodyAll)
		if len(raw) == 0 {
			continue
		}

		jobs := extractJobs(string(raw))
		for _, j := range jobs {
			j.Source = s.Name()
			j.JobID = util.JobID(j.Title, j.Company, s.Name())
			j.IsRemote = util.LooksRemote(j.Location, j.Title, "")
			out = append(out, j)
		}
		seenUIDs = append(seenUIDs, buf.UID)
	}
	if err := fetchCmd.Close(); err != nil {
		return out, fmt.Errorf("emailalert fetch close: %w", err)
	}

	// Mark processed alerts seen so the next run skips them.
	if len(seenUIDs) > 0 {
		cmd := c.Store(imap.UIDSetNum(seenUIDs...), &imap.StoreFlags{
			Op:     imap.StoreFlagsAdd,
			Silent: true,
			Flags:  []imap.Flag{imap.FlagSeen},
		}, nil)
		if err := cmd.Close(); err != nil {
			log.Printf("[emailalert] mark seen: %v", err)
		}
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func looksLikeJobAlert(subject, from string) bool {
	s := strings.ToLower(subject)
	f := strings.ToLower(from)
	if strings.Contains(f, "linkedin") || strings.Contains(f, "indeed") || strings.Contains(f, "glassdoor") {
		return strings.Contains(s, "job") || strings.Contains(s, "opportunit") || strings.Contains(s, "hiring")
	}
	return false
}
