package search

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/source"

	"golang.org/x/sync/errgroup"
)

// Options tune the aggregator; zero values fall back to defaults.
type Options struct {
	PerSourceTimeout time.Duration // default 20s
	LimitPerSource   int           // default 50
	MinResults       int           // pad with samples below this; default 5
	CacheTTL         time.Duration // default 15m
}

// Aggregator fans a query out to every configured source, normalizes and
// dedupes the union, and serves repeats from a TTL cache.
type Aggregator struct {
	sources    []source.Source
	classifier *Classifier
	cache      *Cache
	opts       Options
	now        func() time.Time
}

func NewAggregator(sources []source.Source, classifier *Classifier, opts Options) *Aggregator {
	if opts.PerSourceTimeout <= 0 {
		opts.PerSourceTimeout = 20 * time.Second
	}
	if opts.LimitPerSource <= 0 {
		opts.LimitPerSource = 50
	}
	if opts.MinResults <= 0 {
		opts.MinResults = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 15 * time.Minute
	}
	return &Aggregator{
		sources:    sources,
		classifier: classifier,
		cache:      NewCache(opts.CacheTTL),
		opts:       opts,
		now:        time.Now,
	}
}

// Cache exposes the aggregator's cache; test hook for clock injection.
func (a *Aggregator) Cache() *Cache { return a.cache }

// Search runs one aggregation call. A source that errors or times out
// contributes nothing and never fails the batch. Non-empty locations act as
// a per-call allow-list for non-remote listings; remote listings always pass.
func (a *Aggregator) Search(ctx context.Context, keyword string, remoteOnly bool, locations []string) []domain.JobListing {
	key := CacheKey(keyword, remoteOnly, locations)
	if hit, ok := a.cache.Get(key); ok {
		log.Printf("[search] cache hit query=%q remote=%t n=%d", keyword, remoteOnly, len(hit))
		return hit
	}

	terms := Expand(keyword)
	q := source.Query{Keyword: keyword, RemoteOnly: remoteOnly, Limit: a.opts.LimitPerSource}

	results := make(chan []domain.JobListing, len(a.sources))
	var g errgroup.Group

	for _, src := range a.sources {
		src := src
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, a.opts.PerSourceTimeout)
			defer cancel()

			listings, err := src.Search(sctx, q)
			if err != nil {
				log.Printf("[source:%s] error: %v", src.Name(), err)
				return nil // best-effort: don't cancel siblings
			}
			results <- listings
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	var merged []domain.JobListing
	for batch := range results {
		for _, l := range batch {
			l.IsRemote = l.IsRemote || a.classifier.IsRemote(l.Location)
			if !a.keep(l, terms, remoteOnly, locations) {
				continue
			}
			merged = append(merged, l)
		}
	}

	merged = dedupe(merged)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PostedAt.After(merged[j].PostedAt)
	})

	if len(merged) < a.opts.MinResults {
		pad := sampleListings(keyword, a.opts.MinResults-len(merged), a.now())
		if remoteOnly {
			for i := range pad {
				pad[i].IsRemote = true
				pad[i].Location = "Remote"
			}
		}
		// Samples go through dedupe too so a real listing and a sample never
		// share a (title, company) pair; real records are first, so they win.
		merged = dedupe(append(merged, pad...))
		log.Printf("[search] thin results for %q, padded with %d samples", keyword, len(pad))
	}

	a.cache.Put(key, merged)
	a.cache.Purge()
	return merged
}

func (a *Aggregator) keep(l domain.JobListing, terms []string, remoteOnly bool, locations []string) bool {
	if l.Title == "" || l.Company == "" || l.ApplyLink == "" {
		return false
	}

	blob := l.Title + " " + l.Description + " " + strings.Join(l.Tags, " ") + " " + l.Company
	if !MatchesAny(terms, blob) {
		return false
	}

	if remoteOnly && !l.IsRemote {
		return false
	}
	if !l.IsRemote && !a.classifier.Accept(l.Location) {
		return false
	}
	if len(locations) > 0 && !l.IsRemote && !matchesLocation(l.Location, locations) {
		return false
	}
	return true
}

// matchesLocation reports whether loc names one of the preferred locations.
// Substring match, same recall-first stance as the classifier.
func matchesLocation(loc string, preferred []string) bool {
	l := strings.ToLower(loc)
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(l, p) {
			return true
		}
	}
	return false
}

// dedupe drops later records sharing a case-insensitive (title, company)
// pair, keeping first-seen.
func dedupe(in []domain.JobListing) []domain.JobListing {
	seen := map[string]bool{}
	out := make([]domain.JobListing, 0, len(in))
	for _, l := range in {
		k := strings.ToLower(l.Title) + "|" + strings.ToLower(l.Company)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}
