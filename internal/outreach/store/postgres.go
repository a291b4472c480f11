package store

import (
	"context"
	"database/sql"
	"fmt"

	"crmsync/internal/outreach/models"
)

// PostgresEventStore persists the outreach event log in PostgreSQL. The seq
// column records ingestion order; ReadEvents returns it so downstream
// tie-breaking sees the same order events arrived in.
type PostgresEventStore struct {
	db *sql.DB
}

func NewPostgresEventStore(db *sql.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

func (s *PostgresEventStore) Append(ctx context.Context, events ...models.RawEvent) error {
	for _, ev := range events {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO outreach_events (event_id, company_id, company_name, event_date, outcome, notes)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			ev.EventID, ev.CompanyID, ev.CompanyName, ev.EventDate, ev.Outcome, ev.Notes,
		)
		if err != nil {
			return fmt.Errorf("append event %q: %w", ev.EventID, err)
		}
	}
	return nil
}

func (s *PostgresEventStore) ReadEvents(ctx context.Context) ([]models.RawEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, company_id, company_name, event_date, outcome, notes
		FROM outreach_events
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var out []models.RawEvent
	for rows.Next() {
		var ev models.RawEvent
		if err := rows.Scan(&ev.EventID, &ev.CompanyID, &ev.CompanyName, &ev.EventDate, &ev.Outcome, &ev.Notes); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return out, nil
}
