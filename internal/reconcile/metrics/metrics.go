package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the reconcile module.
// Tracks run counts, per-run record outcomes, and run durations.
type Metrics struct {
	Runs             prometheus.Counter
	ProspectsUpdated prometheus.Counter
	ProspectsCreated prometheus.Counter
	EventsUnmatched  prometheus.Counter
	EventsSkipped    prometheus.Counter
	CompanyErrors    prometheus.Counter
	RunDuration      prometheus.Histogram
}

// New creates a new Metrics instance with all reconcile module metrics registered.
func New() *Metrics {
	return &Metrics{
		Runs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsync_reconcile_runs_total",
			Help: "Total number of reconciliation runs",
		}),
		ProspectsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsync_prospects_updated_total",
			Help: "Total number of prospects updated in place",
		}),
		ProspectsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsync_prospects_created_total",
			Help: "Total number of prospects created from unmatched events",
		}),
		EventsUnmatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsync_events_unmatched_total",
			Help: "Total number of company keys that resolved to no existing prospect",
		}),
		EventsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsync_events_skipped_total",
			Help: "Total number of events dropped for missing company identity",
		}),
		CompanyErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsync_company_errors_total",
			Help: "Total number of per-company failures captured during runs",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crmsync_reconcile_run_duration_seconds",
			Help:    "Duration of full reconciliation runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveRun records one completed run and its duration.
// Call with time.Now() at the start of the run.
func (m *Metrics) ObserveRun(start time.Time) {
	m.Runs.Inc()
	m.RunDuration.Observe(time.Since(start).Seconds())
}

// AddOutcomes records the record-level tallies of one run.
func (m *Metrics) AddOutcomes(updated, created, unmatched, skipped, errs int) {
	m.ProspectsUpdated.Add(float64(updated))
	m.ProspectsCreated.Add(float64(created))
	m.EventsUnmatched.Add(float64(unmatched))
	m.EventsSkipped.Add(float64(skipped))
	m.CompanyErrors.Add(float64(errs))
}
