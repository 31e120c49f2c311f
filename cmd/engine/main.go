package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"autoapply-engine/internal/automation"
	"autoapply-engine/internal/automation/chrome"
	"autoapply-engine/internal/automation/rodeng"
	"autoapply-engine/internal/bot"
	"autoapply-engine/internal/config"
	"autoapply-engine/internal/events"
	"autoapply-engine/internal/httpapi"
	"autoapply-engine/internal/orchestrator"
	"autoapply-engine/internal/scheduler"
	"autoapply-engine/internal/search"
	"autoapply-engine/internal/secrets"
	"autoapply-engine/internal/source"
	"autoapply-engine/internal/source/adzuna"
	"autoapply-engine/internal/source/arbeitnow"
	"autoapply-engine/internal/source/emailalert"
	"autoapply-engine/internal/source/remoteok"
	"autoapply-engine/internal/source/remotive"
	"autoapply-engine/internal/source/util"
	"autoapply-engine/internal/source/weworkremotely"
	"autoapply-engine/internal/store"
	"autoapply-engine/internal/tailor"

	"github.com/gofrs/flock"
)

func main() {
	// Engine data dir: use env if provided (a desktop shell can pass one), else local folder.
	dataDir := os.Getenv("AUTOAPPLY_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Single instance per data dir; two engines sharing one sqlite file
	// would fight over the browser quota too.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already holds %s", lock.Path())
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, wmsg := range vr.Warnings {
			log.Printf("[config] warning: %s", wmsg)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "autoapply.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	attempts := &store.Attempts{DB: db.Pool}
	screenshots := &store.Screenshots{DB: db.Pool}
	users := &store.Users{DB: db.Pool}

	classifier := search.NewClassifier(cfg.Filters.LocationsBlock)
	agg := search.NewAggregator(buildSources(cfg), classifier, search.Options{
		PerSourceTimeout: time.Duration(cfg.Search.PerSourceTimeoutS) * time.Second,
		LimitPerSource:   cfg.Search.LimitPerSource,
		MinResults:       cfg.Search.MinResults,
		CacheTTL:         time.Duration(cfg.Search.CacheTTLMinutes) * time.Minute,
	})

	applyBot := bot.New(engineFactory(cfg), screenshots, bot.Options{})

	var tailorSvc tailor.Service
	if cfg.Apply.TailorURL != "" {
		tailorSvc = tailor.NewHTTPService(cfg.Apply.TailorURL, time.Duration(cfg.Apply.TailorTimeoutS)*time.Second)
	}

	orch := orchestrator.New(agg, applyBot, attempts, users, tailorSvc, hub, orchestrator.Options{
		MaxBrowsers:   cfg.Automation.MaxBrowsers,
		TailorTimeout: time.Duration(cfg.Apply.TailorTimeoutS) * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Scheduled sweeps, one cron entry per supported frequency.
	cr := orch.StartSweeper(ctx)
	defer cr.Stop()

	// Attempt history retention.
	go scheduler.Every(ctx, 24*time.Hour, "retention", func(ctx context.Context) error {
		n, err := store.CleanupOldAttempts(db.Pool)
		if err == nil && n > 0 {
			log.Printf("[retention] pruned %d old attempts", n)
		}
		return err
	})

	var applyStatus atomic.Value
	applyStatus.Store(httpapi.ApplyStatus{})
	var runActive atomic.Bool

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		ApplyStatus: &applyStatus,
		RunActive:   &runActive,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Attempts:    attempts,
		Screenshots: screenshots,
		Users:       users,
		Search:      agg.Search,
		RunForUser:  orch.RunForUser,
		RunSweep:    orch.RunSweep,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.Cors,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// /shutdown is attached here because it needs srv and the token.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	tokenPath := filepath.Join(dataDir, "shutdown.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	go func() {
		<-ctx.Done()
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shctx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// buildSources assembles the enabled search adapters. Missing credentials
// disable a source with a log line instead of failing startup.
func buildSources(cfg config.Config) []source.Source {
	limiter := util.NewHostLimiter(1, 2)

	var out []source.Source
	if cfg.Sources.Remotive.Enabled {
		out = append(out, remotive.New(limiter))
	}
	if cfg.Sources.Arbeitnow.Enabled {
		out = append(out, arbeitnow.New(limiter))
	}
	if cfg.Sources.RemoteOK.Enabled {
		out = append(out, remoteok.New(limiter))
	}
	if cfg.Sources.WeWorkRemotely.Enabled {
		out = append(out, weworkremotely.New(limiter))
	}
	if cfg.Sources.Adzuna.Enabled {
		appID, err1 := secrets.Get(secrets.AccountAdzunaAppID)
		appKey, err2 := secrets.Get(secrets.AccountAdzunaAppKey)
		if err1 != nil || err2 != nil {
			log.Printf("[sources] adzuna enabled but keys missing from keychain; skipping")
		} else {
			out = append(out, adzuna.New(adzuna.Config{
				AppID:   appID,
				AppKey:  appKey,
				Country: cfg.Sources.Adzuna.Country,
			}, limiter))
		}
	}
	if cfg.Sources.EmailAlert.Enabled {
		pw, err := secrets.Get(secrets.IMAPKeyringAccount(cfg))
		if err != nil {
			log.Printf("[sources] email alerts enabled but password missing from keychain; skipping")
		} else {
			out = append(out, emailalert.New(emailalert.Config{
				IMAPHost: cfg.Sources.EmailAlert.IMAPHost,
				IMAPPort: cfg.Sources.EmailAlert.IMAPPort,
				Username: cfg.Sources.EmailAlert.Username,
				Password: pw,
				Mailbox:  cfg.Sources.EmailAlert.Mailbox,
			}))
		}
	}

	log.Printf("[sources] %d enabled", len(out))
	return out
}

// engineFactory maps automation.primary to a fresh (primary, fallback) pair
// per attempt. One browser per attempt keeps failures isolated.
func engineFactory(cfg config.Config) automation.Factory {
	opts := struct {
		headless bool
		step     time.Duration
	}{
		headless: cfg.Headless(),
		step:     time.Duration(cfg.Automation.StepTimeoutS) * time.Second,
	}

	if cfg.Automation.Primary == "rod" {
		return func() (automation.Engine, automation.Engine) {
			return rodeng.New(rodeng.Options{Headless: opts.headless, StepTimeout: opts.step}),
				chrome.New(chrome.Options{Headless: opts.headless, StepTimeout: opts.step})
		}
	}
	return func() (automation.Engine, automation.Engine) {
		return chrome.New(chrome.Options{Headless: opts.headless, StepTimeout: opts.step}),
			rodeng.New(rodeng.Options{Headless: opts.headless, StepTimeout: opts.step})
	}
}
