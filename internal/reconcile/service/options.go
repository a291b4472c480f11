package service

import (
	"log/slog"
	"time"

	reconcilemetrics "crmsync/internal/reconcile/metrics"
	"crmsync/internal/reconcile/rules"
)

type engineConfig struct {
	logger      *slog.Logger
	metrics     *reconcilemetrics.Metrics
	classifier  rules.Classifier
	now         func() time.Time
	concurrency int
	accounts    AccountStore
	wonStage    string
}

// Option configures optional Engine collaborators.
type Option func(*engineConfig)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.logger = logger
	}
}

// WithMetrics enables reconcile metrics. Without it the engine records nothing.
func WithMetrics(m *reconcilemetrics.Metrics) Option {
	return func(cfg *engineConfig) {
		cfg.metrics = m
	}
}

// WithClassifier sets the keyword fallback used when the rule table yields no
// status for an outcome. Defaults to rules.LegacyClassifier.
func WithClassifier(c rules.Classifier) Option {
	return func(cfg *engineConfig) {
		cfg.classifier = c
	}
}

// WithClock overrides the reference time source. Tests pin it to get stable
// day counts.
func WithClock(now func() time.Time) Option {
	return func(cfg *engineConfig) {
		cfg.now = now
	}
}

// WithConcurrency lets up to n companies reconcile in parallel. Values below
// two keep the default sequential pass.
func WithConcurrency(n int) Option {
	return func(cfg *engineConfig) {
		cfg.concurrency = n
	}
}

// WithAccountMigration promotes prospects whose reconciled stage equals
// wonStage into the account store.
func WithAccountMigration(accounts AccountStore, wonStage string) Option {
	return func(cfg *engineConfig) {
		cfg.accounts = accounts
		cfg.wonStage = wonStage
	}
}
