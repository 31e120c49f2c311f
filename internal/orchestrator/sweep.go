package orchestrator

import (
	"context"
	"errors"
	"log"
	"sync"

	"autoapply-engine/internal/domain"

	"github.com/robfig/cron/v3"
)

// RunSweep processes every enabled user whose schedule frequency matches.
// An empty frequency means "everyone". Users run concurrently (the browser
// semaphore still caps real parallelism); one user's failure never stops the
// rest.
func (o *Orchestrator) RunSweep(ctx context.Context, frequency string) {
	users, err := o.users.EnabledUsers(ctx)
	if err != nil {
		log.Printf("[sweep] list users: %v", err)
		return
	}

	var wg sync.WaitGroup
	for _, u := range users {
		if frequency != "" && normalizeFrequency(u.Settings.ScheduleFrequency) != frequency {
			continue
		}
		u := u
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("[sweep] user=%s panic: %v", u.ID, rec)
				}
			}()

			attempts, err := o.runUser(ctx, u)
			switch {
			case errors.Is(err, ErrQuotaExceeded):
				// nothing to do until tomorrow
			case err != nil:
				log.Printf("[sweep] user=%s error: %v", u.ID, err)
			default:
				log.Printf("[sweep] user=%s attempts=%d", u.ID, len(attempts))
			}
		}()
	}
	wg.Wait()
}

func normalizeFrequency(f string) string {
	switch f {
	case domain.FreqHourly, domain.Freq6Hours, domain.Freq12Hours, domain.FreqDaily:
		return f
	default:
		return domain.FreqDaily
	}
}

// StartSweeper registers one cron entry per supported frequency and starts
// the scheduler. Stop via the returned cron's Stop.
func (o *Orchestrator) StartSweeper(ctx context.Context) *cron.Cron {
	c := cron.New()

	specs := map[string]string{
		domain.FreqHourly:  "@hourly",
		domain.Freq6Hours:  "0 */6 * * *",
		domain.Freq12Hours: "0 */12 * * *",
		domain.FreqDaily:   "@daily",
	}
	for freq, spec := range specs {
		freq := freq
		if _, err := c.AddFunc(spec, func() {
			log.Printf("[sweep] tick frequency=%s", freq)
			o.RunSweep(ctx, freq)
		}); err != nil {
			log.Printf("[sweep] register %s: %v", freq, err)
		}
	}

	c.Start()
	return c
}
