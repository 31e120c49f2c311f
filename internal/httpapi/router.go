package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Search
	srh := SearchHandler{Search: d.Search}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Get,
	}))

	// Apply pipeline
	ah := ApplyHandler{
		ApplyStatus: d.ApplyStatus,
		RunActive:   d.RunActive,
		Hub:         d.Hub,
		RunForUser:  d.RunForUser,
		RunSweep:    d.RunSweep,
	}
	mux.HandleFunc("/apply/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Run,
	}))
	mux.HandleFunc("/apply/sweep", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Sweep,
	}))
	mux.HandleFunc("/apply/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Status,
	}))

	// Attempt history + evidence
	th := AttemptsHandler{Attempts: d.Attempts}
	mux.HandleFunc("/attempts", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.List,
	}))
	sh := ScreenshotHandler{Screenshots: d.Screenshots}
	mux.HandleFunc("/screenshot/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.GetByPath, // expects /screenshot/{key}
	}))

	// Users
	uh := UsersHandler{Users: d.Users}
	mux.HandleFunc("/users/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: uh.GetByPath,
		http.MethodPut: uh.PutByPath,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sec := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sec.SetIMAPPassword,
	}))
	mux.HandleFunc("/api/secrets/adzuna", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sec.SetAdzunaKeys,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	hh := HealthHandler{DB: d.DB}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
