// Package aggregate reduces the raw event log to one authoritative event per
// company before identity resolution, bounding the orchestrator to at most
// one mutation attempt per distinct company key.
package aggregate

import (
	"log/slog"

	outreachmodels "crmsync/internal/outreach/models"
)

type Aggregator struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// LatestPerCompany groups events by company key (ID when present, otherwise
// name) and keeps the event with the greatest date per key. When two events
// share both key and date, the later one in input order wins. Events with
// neither ID nor name are dropped with a diagnostic log; the second return
// value counts them.
func (a *Aggregator) LatestPerCompany(events []outreachmodels.RawEvent) (map[string]outreachmodels.RawEvent, int) {
	latest := make(map[string]outreachmodels.RawEvent, len(events))
	skipped := 0

	for _, ev := range events {
		key := ev.CompanyKey()
		if key == "" {
			a.logger.Debug("dropping event without company identity", "event_id", ev.EventID)
			skipped++
			continue
		}
		cur, ok := latest[key]
		if !ok || !ev.EventDate.Before(cur.EventDate) {
			latest[key] = ev
		}
	}

	return latest, skipped
}
