// Package orchestrator owns per-user quota accounting, candidate selection,
// and the periodic auto-apply sweep.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"autoapply-engine/internal/bot"
	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/events"
	"autoapply-engine/internal/store"
	"autoapply-engine/internal/tailor"

	"golang.org/x/sync/semaphore"
)

// ErrQuotaExceeded signals the day's limit is already spent; the run did no
// partial work.
var ErrQuotaExceeded = errors.New("daily application limit reached")

// History is the application-history collaborator consulted for idempotency
// and quota accounting.
type History interface {
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	Append(ctx context.Context, a domain.ApplicationAttempt) error
	CountToday(ctx context.Context, userID string) (int, error)
}

// UserStore reads users, their settings, and their profiles.
type UserStore interface {
	Get(ctx context.Context, id string) (domain.User, error)
	EnabledUsers(ctx context.Context) ([]domain.User, error)
}

// Searcher is the aggregator-facing contract.
type Searcher interface {
	Search(ctx context.Context, keyword string, remoteOnly bool, locations []string) []domain.JobListing
}

// Applier is the submission-bot-facing contract.
type Applier interface {
	Apply(ctx context.Context, req bot.Request) domain.ApplicationAttempt
}

// Notifier receives attempt lifecycle events; nil-safe.
type Notifier interface {
	Publish(evt string)
}

type Options struct {
	MaxBrowsers   int           // global ceiling on concurrent browser instances; default 2
	TailorTimeout time.Duration // default 20s
}

type Orchestrator struct {
	search  Searcher
	applier Applier
	history History
	users   UserStore
	tailor  tailor.Service // optional
	hub     Notifier       // optional
	sem     *semaphore.Weighted
	opts    Options
}

func New(search Searcher, applier Applier, history History, users UserStore, t tailor.Service, hub Notifier, opts Options) *Orchestrator {
	if opts.MaxBrowsers <= 0 {
		opts.MaxBrowsers = 2
	}
	if opts.TailorTimeout <= 0 {
		opts.TailorTimeout = 20 * time.Second
	}
	return &Orchestrator{
		search:  search,
		applier: applier,
		history: history,
		users:   users,
		tailor:  t,
		hub:     hub,
		sem:     semaphore.NewWeighted(int64(opts.MaxBrowsers)),
		opts:    opts,
	}
}

// RunForUser executes one auto-apply cycle for a single user. Candidates are
// processed strictly one at a time so quota accounting stays deterministic
// and destination sites see humane pacing.
func (o *Orchestrator) RunForUser(ctx context.Context, userID string) ([]domain.ApplicationAttempt, error) {
	user, err := o.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return o.runUser(ctx, user)
}

func (o *Orchestrator) runUser(ctx context.Context, user domain.User) ([]domain.ApplicationAttempt, error) {
	settings := user.Settings

	used, err := o.history.CountToday(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count today for %s: %w", user.ID, err)
	}
	remaining := settings.MaxApplicationsPerDay - used
	if remaining <= 0 {
		log.Printf("[orchestrator] user=%s limit reached (%d/%d)", user.ID, used, settings.MaxApplicationsPerDay)
		return nil, ErrQuotaExceeded
	}

	candidates := o.selectCandidates(ctx, user, remaining)
	log.Printf("[orchestrator] user=%s candidates=%d remaining=%d", user.ID, len(candidates), remaining)

	var attempts []domain.ApplicationAttempt
	for _, job := range candidates {
		coverText := o.tailorOrFallback(ctx, job, user)

		if err := o.sem.Acquire(ctx, 1); err != nil {
			return attempts, err
		}
		attempt := o.applier.Apply(ctx, bot.Request{
			UserID:    user.ID,
			Job:       job,
			Profile:   user.Profile,
			CoverText: coverText,
		})
		o.sem.Release(1)

		if err := o.history.Append(ctx, attempt); err != nil {
			if errors.Is(err, store.ErrDuplicateAttempt) {
				// Lost the race against a concurrent run for the same job;
				// the other writer's record stands.
				log.Printf("[orchestrator] user=%s job=%s already recorded, dropping", user.ID, job.JobID)
				continue
			}
			log.Printf("[orchestrator] user=%s append attempt: %v", user.ID, err)
		}
		attempts = append(attempts, attempt)

		if o.hub != nil {
			o.hub.Publish(events.MakeEvent("", "attempt_finished", 1, map[string]any{
				"user_id": user.ID,
				"job_id":  job.JobID,
				"status":  attempt.Status,
			}))
		}
	}
	return attempts, nil
}

// selectCandidates gathers fresh listings for every keyword, filtered by the
// user's location preferences, drops anything already attempted, and
// truncates to the remaining quota. Synthetic sample records are never
// applied to.
func (o *Orchestrator) selectCandidates(ctx context.Context, user domain.User, remaining int) []domain.JobListing {
	seen := map[string]bool{}
	var out []domain.JobListing

	for _, kw := range user.Settings.JobKeywords {
		if len(out) >= remaining {
			break
		}
		for _, job := range o.search.Search(ctx, kw, user.Settings.RemoteOnly, user.Settings.Locations) {
			if len(out) >= remaining {
				break
			}
			if job.IsSample || job.ApplyLink == "" || seen[job.JobID] {
				continue
			}
			seen[job.JobID] = true

			applied, err := o.history.Exists(ctx, user.ID, job.JobID)
			if err != nil {
				log.Printf("[orchestrator] history check user=%s job=%s: %v", user.ID, job.JobID, err)
				continue
			}
			if applied {
				continue
			}
			out = append(out, job)
		}
	}
	return out
}

// tailorOrFallback asks the tailoring collaborator for job-specific resume
// text; any failure or timeout falls back to the untailored base resume.
func (o *Orchestrator) tailorOrFallback(ctx context.Context, job domain.JobListing, user domain.User) string {
	if o.tailor == nil || user.BaseResume == "" {
		return user.BaseResume
	}

	tctx, cancel := context.WithTimeout(ctx, o.opts.TailorTimeout)
	defer cancel()

	text, err := o.tailor.Tailor(tctx, tailor.Request{
		JobTitle:       job.Title,
		JobDescription: job.Description,
		CompanyName:    job.Company,
		BaseResume:     user.BaseResume,
	})
	if err != nil {
		log.Printf("[orchestrator] tailor failed for job=%s, using base resume: %v", job.JobID, err)
		return user.BaseResume
	}
	return text
}
