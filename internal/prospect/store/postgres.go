package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"crmsync/internal/prospect/models"
	"crmsync/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code raised by the prospects
// company_id unique index.
const uniqueViolation = "23505"

// prospectColumns maps the public field names onto table columns. Acting as
// an allowlist, it is the only path from caller-supplied field names into SQL
// text; unknown names are dropped, never interpolated.
var prospectColumns = map[string]string{
	models.FieldCompanyID:        "company_id",
	models.FieldCompanyName:      "company_name",
	models.FieldContactStatus:    "contact_status",
	models.FieldStage:            "stage",
	models.FieldLastOutcome:      "last_outcome",
	models.FieldLastContactDate:  "last_contact_date",
	models.FieldDaysSinceContact: "days_since_contact",
	models.FieldNextStepsDue:     "next_steps_due",
	models.FieldUrgencyScore:     "urgency_score",
	models.FieldUrgencyBand:      "urgency_band",
}

// PostgresProspectStore persists prospects in PostgreSQL.
type PostgresProspectStore struct {
	db *sql.DB
}

func NewPostgresProspectStore(db *sql.DB) *PostgresProspectStore {
	return &PostgresProspectStore{db: db}
}

func (s *PostgresProspectStore) ReadAll(ctx context.Context) ([]*models.Prospect, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, company_name, contact_status, stage, last_outcome,
		       last_contact_date, days_since_contact, next_steps_due,
		       urgency_score, urgency_band
		FROM prospects
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("read prospects: %w", err)
	}
	defer rows.Close()

	var out []*models.Prospect
	for rows.Next() {
		var p models.Prospect
		var band string
		if err := rows.Scan(
			&p.RowRef, &p.CompanyID, &p.CompanyName, &p.ContactStatus, &p.Stage,
			&p.LastOutcome, &p.LastContactDate, &p.DaysSinceContact,
			&p.NextStepsDue, &p.UrgencyScore, &band,
		); err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		p.UrgencyBand = models.UrgencyBand(band)
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read prospects: %w", err)
	}
	return out, nil
}

func (s *PostgresProspectStore) Update(ctx context.Context, rowRef string, fields map[string]any) error {
	assignments, args := buildAssignments(fields, 2)
	if len(assignments) == 0 {
		return nil
	}
	args = append([]any{rowRef}, args...)

	query := fmt.Sprintf(`UPDATE prospects SET %s WHERE id = $1`, strings.Join(assignments, ", "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update prospect: %w", translatePQ(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update prospect: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("prospect %q: %w", rowRef, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresProspectStore) Create(ctx context.Context, fields map[string]any) (string, error) {
	columns := []string{"id"}
	placeholders := []string{"$1"}
	args := []any{uuid.NewString()}

	names := allowedFieldNames(fields)
	for _, name := range names {
		columns = append(columns, prospectColumns[name])
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, normalizeArg(fields[name]))
	}

	query := fmt.Sprintf(
		`INSERT INTO prospects (%s) VALUES (%s) RETURNING id`,
		strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)
	var rowRef string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&rowRef); err != nil {
		return "", fmt.Errorf("create prospect: %w", translatePQ(err))
	}
	return rowRef, nil
}

// buildAssignments renders "col = $n" pairs for the allowlisted fields,
// numbering placeholders from firstArg. Field names are sorted so generated
// SQL is stable.
func buildAssignments(fields map[string]any, firstArg int) ([]string, []any) {
	names := allowedFieldNames(fields)
	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for i, name := range names {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", prospectColumns[name], firstArg+i))
		args = append(args, normalizeArg(fields[name]))
	}
	return assignments, args
}

func allowedFieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := prospectColumns[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func normalizeArg(v any) any {
	if band, ok := v.(models.UrgencyBand); ok {
		return string(band)
	}
	return v
}

func translatePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return sentinel.ErrConflict
	}
	return err
}
