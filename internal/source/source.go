package source

import (
	"context"

	"autoapply-engine/internal/domain"
)

// Query is what the aggregator hands each adapter. Keyword is the raw user
// term; term-set matching happens upstream, so adapters just fetch broadly.
type Query struct {
	Keyword    string
	RemoteOnly bool
	Limit      int // per-source cap; <=0 means adapter default
}

// Source is one external job board. Implementations must be safe to call
// concurrently with other sources and must never panic on schema drift.
type Source interface {
	Name() string
	Search(ctx context.Context, q Query) ([]domain.JobListing, error)
}
