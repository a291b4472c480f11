// Package service orchestrates a reconciliation run: aggregate the raw event
// log, resolve each company against the canonical prospect store, derive the
// workflow fields, and apply the result as an in-place update or a new
// prospect. A failure on one company is recorded and never aborts the rest of
// the batch.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	accountmodels "crmsync/internal/account/models"
	outreachmodels "crmsync/internal/outreach/models"
	prospectmodels "crmsync/internal/prospect/models"
	"crmsync/internal/reconcile/aggregate"
	"crmsync/internal/reconcile/derive"
	reconcilemetrics "crmsync/internal/reconcile/metrics"
	"crmsync/internal/reconcile/models"
	"crmsync/internal/reconcile/resolver"
	"crmsync/internal/reconcile/rules"
)

// NewProspectStatus is the contact status assigned to a created prospect when
// neither the rule table nor the classifier yields one.
const NewProspectStatus = "Not Contacted"

// EventSource reads the raw outreach event log.
type EventSource interface {
	ReadEvents(ctx context.Context) ([]outreachmodels.RawEvent, error)
}

// ProspectStore is the canonical prospect collection the engine reconciles
// against. Update and Create take partial field maps keyed by the
// prospectmodels.Field* names; stores ignore names they do not recognize.
type ProspectStore interface {
	ReadAll(ctx context.Context) ([]*prospectmodels.Prospect, error)
	Update(ctx context.Context, rowRef string, fields map[string]any) error
	Create(ctx context.Context, fields map[string]any) (string, error)
}

// AccountStore receives prospects promoted out of the pipeline on a won stage.
type AccountStore interface {
	Append(ctx context.Context, a accountmodels.Account) error
}

// Engine runs reconciliation passes. Safe for concurrent use; runs themselves
// may parallelize across companies when configured.
type Engine struct {
	events    EventSource
	prospects ProspectStore
	table     *rules.Table

	aggregator *aggregate.Aggregator
	resolver   *resolver.Resolver
	classifier rules.Classifier
	logger     *slog.Logger
	metrics    *reconcilemetrics.Metrics
	now        func() time.Time

	concurrency int
	accounts    AccountStore
	wonStage    string

	mu   sync.Mutex
	last *models.RunReport
}

func New(events EventSource, prospects ProspectStore, table *rules.Table, opts ...Option) *Engine {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.classifier == nil {
		cfg.classifier = rules.LegacyClassifier()
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &Engine{
		events:      events,
		prospects:   prospects,
		table:       table,
		aggregator:  aggregate.New(cfg.logger),
		resolver:    resolver.New(),
		classifier:  cfg.classifier,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
		now:         cfg.now,
		concurrency: cfg.concurrency,
		accounts:    cfg.accounts,
		wonStage:    cfg.wonStage,
	}
}

// Run reads both stores and reconciles them. The returned error covers only
// failures to read the inputs or a canceled context; per-company failures
// land in the report's Errors.
func (e *Engine) Run(ctx context.Context) (models.RunReport, error) {
	events, err := e.events.ReadEvents(ctx)
	if err != nil {
		return models.RunReport{}, fmt.Errorf("read events: %w", err)
	}
	prospects, err := e.prospects.ReadAll(ctx)
	if err != nil {
		return models.RunReport{}, fmt.Errorf("read prospects: %w", err)
	}
	return e.RunWith(ctx, events, prospects)
}

// RunWith reconciles an already-loaded event log against an already-loaded
// prospect snapshot. Companies are processed in sorted key order so repeated
// runs over the same inputs behave identically.
func (e *Engine) RunWith(ctx context.Context, events []outreachmodels.RawEvent, prospects []*prospectmodels.Prospect) (models.RunReport, error) {
	start := time.Now()

	latest, skipped := e.aggregator.LatestPerCompany(events)
	keys := make([]string, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	report := models.RunReport{Skipped: skipped}
	var mu sync.Mutex
	apply := func(key string, r companyResult, err error) {
		mu.Lock()
		defer mu.Unlock()
		if r.unmatched {
			report.Unmatched++
		}
		if r.updated {
			report.Updated++
		}
		if r.created {
			report.Created++
		}
		if err != nil {
			e.logger.Warn("company reconciliation failed", "company_key", key, "error", err)
			report.Errors = append(report.Errors, models.CompanyError{CompanyKey: key, Message: err.Error()})
		}
	}

	if e.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.concurrency)
		for _, key := range keys {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				r, err := e.reconcileCompany(gctx, key, latest[key], prospects)
				apply(key, r, err)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return report, err
		}
	} else {
		for _, key := range keys {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			r, err := e.reconcileCompany(ctx, key, latest[key], prospects)
			apply(key, r, err)
		}
	}

	// error order tracks company key order even under parallel runs
	sort.Slice(report.Errors, func(i, j int) bool {
		return report.Errors[i].CompanyKey < report.Errors[j].CompanyKey
	})

	e.mu.Lock()
	e.last = &report
	e.mu.Unlock()

	e.observeRun(start, report)
	e.logger.Info("reconciliation run complete",
		"companies", len(keys),
		"updated", report.Updated,
		"created", report.Created,
		"unmatched", report.Unmatched,
		"skipped", report.Skipped,
		"errors", len(report.Errors),
	)
	return report, nil
}

// LastReport returns the report of the most recent completed run, if any.
func (e *Engine) LastReport() (models.RunReport, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return models.RunReport{}, false
	}
	return *e.last, true
}

type companyResult struct {
	updated   bool
	created   bool
	unmatched bool
}

func (e *Engine) reconcileCompany(ctx context.Context, key string, ev outreachmodels.RawEvent, candidates []*prospectmodels.Prospect) (companyResult, error) {
	res := e.resolver.Resolve(ev, candidates)
	der := derive.Derive(ev, e.now(), e.table)
	entry := e.table.Lookup(ev.Outcome)
	status := entry.Status
	if status == "" {
		status = e.classifier.Status(ev.Outcome)
	}

	fields := map[string]any{
		prospectmodels.FieldLastOutcome:      ev.Outcome,
		prospectmodels.FieldLastContactDate:  ev.EventDate,
		prospectmodels.FieldDaysSinceContact: der.DaysSinceContact,
		prospectmodels.FieldNextStepsDue:     der.NextStepsDue,
		prospectmodels.FieldUrgencyScore:     der.UrgencyScore,
		prospectmodels.FieldUrgencyBand:      der.UrgencyBand,
	}
	if status != "" {
		fields[prospectmodels.FieldContactStatus] = status
	}
	if entry.Stage != "" {
		fields[prospectmodels.FieldStage] = entry.Stage
	}

	if res.Prospect != nil {
		if err := e.prospects.Update(ctx, res.Prospect.RowRef, fields); err != nil {
			return companyResult{}, fmt.Errorf("update prospect: %w", err)
		}
		e.logger.Debug("prospect updated",
			"company_key", key,
			"match_type", string(res.Type),
			"row_ref", res.Prospect.RowRef,
		)
		r := companyResult{updated: true}
		if err := e.maybePromote(ctx, res.Prospect, entry, ev); err != nil {
			return r, fmt.Errorf("promote account: %w", err)
		}
		return r, nil
	}

	// no match at any tier: record it and create a fresh prospect
	companyID := strings.TrimSpace(ev.CompanyID)
	if companyID == "" {
		companyID = uuid.NewString()
	}
	fields[prospectmodels.FieldCompanyID] = companyID
	fields[prospectmodels.FieldCompanyName] = strings.TrimSpace(ev.CompanyName)
	if status == "" {
		fields[prospectmodels.FieldContactStatus] = NewProspectStatus
	}
	band, score := derive.NewContactUrgency()
	fields[prospectmodels.FieldUrgencyBand] = band
	fields[prospectmodels.FieldUrgencyScore] = score

	rowRef, err := e.prospects.Create(ctx, fields)
	if err != nil {
		return companyResult{unmatched: true}, fmt.Errorf("create prospect: %w", err)
	}
	e.logger.Debug("prospect created", "company_key", key, "row_ref", rowRef)
	r := companyResult{unmatched: true, created: true}
	created := &prospectmodels.Prospect{
		RowRef:      rowRef,
		CompanyID:   companyID,
		CompanyName: strings.TrimSpace(ev.CompanyName),
		Stage:       entry.Stage,
	}
	if err := e.maybePromote(ctx, created, entry, ev); err != nil {
		return r, fmt.Errorf("promote account: %w", err)
	}
	return r, nil
}

// maybePromote appends the prospect to the account store when the reconciled
// stage equals the configured won stage. Promotion triggers on the outcome's
// stage, so a company whose very first event wins the account is promoted the
// same run it is created.
func (e *Engine) maybePromote(ctx context.Context, p *prospectmodels.Prospect, entry rules.Entry, ev outreachmodels.RawEvent) error {
	if e.accounts == nil || e.wonStage == "" {
		return nil
	}
	stage := entry.Stage
	if stage == "" {
		stage = p.Stage
	}
	if stage != e.wonStage {
		return nil
	}
	return e.accounts.Append(ctx, accountmodels.Account{
		CompanyID:   p.CompanyID,
		CompanyName: p.CompanyName,
		WonOutcome:  ev.Outcome,
		WonAt:       ev.EventDate,
	})
}

func (e *Engine) observeRun(start time.Time, report models.RunReport) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveRun(start)
	e.metrics.AddOutcomes(report.Updated, report.Created, report.Unmatched, report.Skipped, len(report.Errors))
}
