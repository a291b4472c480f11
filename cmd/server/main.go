package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountstore "crmsync/internal/account/store"
	outreachstore "crmsync/internal/outreach/store"
	"crmsync/internal/platform/config"
	"crmsync/internal/platform/httpserver"
	"crmsync/internal/platform/logger"
	prospectstore "crmsync/internal/prospect/store"
	reconcilehandler "crmsync/internal/reconcile/handler"
	reconcilemetrics "crmsync/internal/reconcile/metrics"
	reconcileservice "crmsync/internal/reconcile/service"
	"crmsync/internal/settings"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	s := settings.Default()
	if cfg.SettingsPath != "" {
		loaded, err := settings.Load(cfg.SettingsPath)
		if err != nil {
			log.Error("failed to load settings", "path", cfg.SettingsPath, "error", err)
			os.Exit(1)
		}
		s = loaded
	}
	if cfg.Classifier != "" {
		if cfg.Classifier != settings.ClassifierLegacy && cfg.Classifier != settings.ClassifierStrict {
			log.Error("unknown CRM_CLASSIFIER value", "classifier", cfg.Classifier)
			os.Exit(1)
		}
		s.Classifier = cfg.Classifier
	}

	var (
		events    reconcileservice.EventSource
		prospects reconcileservice.ProspectStore
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("failed to reach postgres", "error", err)
			os.Exit(1)
		}
		events = outreachstore.NewPostgresEventStore(db)
		prospects = prospectstore.NewPostgresProspectStore(db)
	} else {
		log.Warn("no CRM_POSTGRES_DSN set, using in-memory stores")
		events = outreachstore.NewInMemoryEventStore()
		prospects = prospectstore.NewInMemoryProspectStore()
	}
	accounts := accountstore.NewInMemoryAccountStore()

	engine := reconcileservice.New(events, prospects, s.Table(),
		reconcileservice.WithLogger(log),
		reconcileservice.WithMetrics(reconcilemetrics.New()),
		reconcileservice.WithClassifier(s.FallbackClassifier()),
		reconcileservice.WithConcurrency(cfg.Concurrency),
		reconcileservice.WithAccountMigration(accounts, s.WonStage),
	)

	router := chi.NewRouter()
	reconcilehandler.New(engine, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting crmsync", "addr", cfg.Addr, "rules", s.Table().Len())

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
