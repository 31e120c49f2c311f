package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"autoapply-engine/internal/config"
	"autoapply-engine/internal/domain"
	"autoapply-engine/internal/events"
	"autoapply-engine/internal/store"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal      *atomic.Value // stores config.Config
	ApplyStatus *atomic.Value // stores httpapi.ApplyStatus
	RunActive   *atomic.Bool  // guards against overlapping /apply/run calls

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Stores
	Attempts    *store.Attempts
	Screenshots *store.Screenshots
	Users       *store.Users

	// Pipeline entrypoints (inject for testability)
	Search     func(ctx context.Context, keyword string, remoteOnly bool, locations []string) []domain.JobListing
	RunForUser func(ctx context.Context, userID string) ([]domain.ApplicationAttempt, error)
	RunSweep   func(ctx context.Context, frequency string)
}
