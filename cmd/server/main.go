package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/igtm/baseball/internal/api"
	"github.com/igtm/baseball/internal/config"
	"github.com/igtm/baseball/internal/config/env"
	"github.com/igtm/baseball/internal/game"
	"github.com/igtm/baseball/internal/middleware"
	"github.com/igtm/baseball/internal/ws"
)

// securityHeaders wraps a handler with common security response headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; connect-src 'self' ws: wss:; img-src 'self' data:")
		next.ServeHTTP(w, r)
	})
}

// noCache keeps browsers from holding on to stale client bundles.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func main() {
	// Write logs to stdout so the host doesn't mark them as errors
	log.SetOutput(os.Stdout)

	if err := config.Load(".env"); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	httpCfg, err := env.NewHTTPConfig()
	if err != nil {
		log.Fatalf("http config: %v", err)
	}
	limits, err := env.NewLimitsConfig()
	if err != nil {
		log.Fatalf("limits config: %v", err)
	}
	gameCfg := env.NewGameConfig()
	tuning, err := env.NewTuningFromYAML(gameCfg.TuningFile())
	if err != nil {
		log.Fatalf("tuning: %v", err)
	}

	limiter := middleware.NewIPRateLimiter(limits.MaxSessionsPerIP(), limits.InputRate(), limits.InputWindow())
	defer limiter.Stop()

	manager := game.NewManager(tuning, gameCfg.Debug())
	hub := ws.NewHub(manager, limiter, httpCfg.OriginPatterns(), limits.MaxSessions())
	handler := api.NewHandler(api.HandlerDeps{Sessions: manager, Stats: hub})

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/ws", hub.HandleWS)
	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(api.CORS(httpCfg.CORSOrigins()))
		r.Use(limiter.Limit)
		handler.Routes(r)
	})

	r.Handle("/*", noCache(http.FileServer(http.Dir(httpCfg.StaticDir()))))

	server := &http.Server{
		Addr:              httpCfg.Address(),
		Handler:           securityHeaders(r),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	idle := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		manager.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		close(idle)
	}()

	log.Printf("Pixel Baseball server starting on %s", httpCfg.Address())
	log.Printf("serving static files from %s", httpCfg.StaticDir())
	log.Printf("tuning: pitch delay %s-%s, round transition %s", tuning.PitchDelayMin, tuning.PitchDelayMax, tuning.RoundTransition)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	<-idle
	log.Println("server stopped")
}
