package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agenthub/agenthub/internal/adapter/github"
	ahhttp "github.com/agenthub/agenthub/internal/adapter/http"
	"github.com/agenthub/agenthub/internal/adapter/jira"
	"github.com/agenthub/agenthub/internal/adapter/postgres"
	"github.com/agenthub/agenthub/internal/adapter/ristretto"
	"github.com/agenthub/agenthub/internal/adapter/slack"
	"github.com/agenthub/agenthub/internal/config"
	"github.com/agenthub/agenthub/internal/dispatch"
	"github.com/agenthub/agenthub/internal/logger"
	"github.com/agenthub/agenthub/internal/middleware"
	"github.com/agenthub/agenthub/internal/port/agentcode"
	"github.com/agenthub/agenthub/internal/registry"
	"github.com/agenthub/agenthub/internal/resilience"
	"github.com/agenthub/agenthub/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if version, err := postgres.MigrationVersion(ctx, cfg.Postgres.DSN); err == nil {
		slog.Info("migrations applied", "schema_version", version)
	}

	cache, err := ristretto.New(cfg.Registry.CacheEntries)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	// --- Tool invokers ---

	breakers := resilience.NewGroup(func() *resilience.Breaker {
		return resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	})
	github.Register(breakers)
	slack.Register(breakers)
	jira.Register(breakers)

	// --- Services ---

	store := postgres.NewStore(pool)
	reg := registry.New(store, cache, cfg.Registry.CacheTTL)
	dispatcher := dispatch.New(store, reg, store, agentcode.Refusing{}, cfg.Dispatch.InvokeTimeout)

	agentSvc := service.NewAgentService(store)
	toolSvc := service.NewToolService(store, reg)
	execSvc := service.NewExecutionService(store, dispatcher)
	settingsSvc := service.NewSettingsService(store)
	chatSvc := service.NewChatService(store)
	nlSvc := service.NewNLService(dispatcher, settingsSvc)

	// --- HTTP ---

	handlers := &ahhttp.Handlers{
		Agents:    agentSvc,
		Tools:     toolSvc,
		Execution: execSvc,
		Settings:  settingsSvc,
		Chat:      chatSvc,
		NL:        nlSvc,
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopCleanup := rateLimiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopCleanup()

	r := chi.NewRouter()
	r.Use(ahhttp.SecurityHeaders)
	r.Use(ahhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.RequestID)
	r.Use(ahhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(rateLimiter.Handler)

	ahhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
