//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
CREATE TABLE IF NOT EXISTS prospects (
	seq                BIGSERIAL,
	id                 TEXT PRIMARY KEY,
	company_id         TEXT NOT NULL DEFAULT '',
	company_name       TEXT NOT NULL DEFAULT '',
	contact_status     TEXT NOT NULL DEFAULT '',
	stage              TEXT NOT NULL DEFAULT '',
	last_outcome       TEXT NOT NULL DEFAULT '',
	last_contact_date  TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
	days_since_contact INTEGER NOT NULL DEFAULT 0,
	next_steps_due     TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
	urgency_score      INTEGER NOT NULL DEFAULT 0,
	urgency_band       TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS prospects_company_id_key
	ON prospects (lower(company_id)) WHERE company_id <> '';

CREATE TABLE IF NOT EXISTS outreach_events (
	seq          BIGSERIAL PRIMARY KEY,
	event_id     TEXT NOT NULL DEFAULT '',
	company_id   TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL DEFAULT '',
	event_date   TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
	outcome      TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT ''
);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with the
// project schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a PostgreSQL container, applies the schema, and
// registers cleanup with the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("crmsync"),
		tcpostgres.WithUsername("crmsync"),
		tcpostgres.WithPassword("crmsync"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = container.Terminate(context.Background())
	})

	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// TruncateTables empties the given tables. Use between tests for isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	if _, err := p.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}
