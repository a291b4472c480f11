//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"crmsync/internal/prospect/models"
	"crmsync/internal/prospect/store"
	"crmsync/pkg/platform/sentinel"
	"crmsync/pkg/testutil/containers"
)

type PostgresProspectSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresProspectStore
}

func TestPostgresProspectSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresProspectSuite))
}

func (s *PostgresProspectSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgresProspectStore(s.postgres.DB)
}

func (s *PostgresProspectSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "prospects", "outreach_events"))
}

func (s *PostgresProspectSuite) TestCreateReadUpdateRoundTrip() {
	ctx := context.Background()
	due := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	ref, err := s.store.Create(ctx, map[string]any{
		models.FieldCompanyID:       "C1",
		models.FieldCompanyName:     "Acme Corp",
		models.FieldContactStatus:   "Contacted",
		models.FieldLastContactDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		models.FieldNextStepsDue:    due,
		models.FieldUrgencyScore:    115,
		models.FieldUrgencyBand:     models.UrgencyHigh,
	})
	s.Require().NoError(err)
	s.NotEmpty(ref)

	all, err := s.store.ReadAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(ref, all[0].RowRef)
	s.Equal("Acme Corp", all[0].CompanyName)
	s.Equal(models.UrgencyHigh, all[0].UrgencyBand)
	s.True(due.Equal(all[0].NextStepsDue))

	err = s.store.Update(ctx, ref, map[string]any{
		models.FieldContactStatus:    "Interested",
		models.FieldDaysSinceContact: 10,
		models.FieldUrgencyBand:      models.UrgencyMedium,
	})
	s.Require().NoError(err)

	all, err = s.store.ReadAll(ctx)
	s.Require().NoError(err)
	s.Equal("Interested", all[0].ContactStatus)
	s.Equal(10, all[0].DaysSinceContact)
	s.Equal(models.UrgencyMedium, all[0].UrgencyBand)
	s.Equal("Acme Corp", all[0].CompanyName, "untouched columns stay")
}

func (s *PostgresProspectSuite) TestUpdateUnknownRowRef() {
	err := s.store.Update(context.Background(), "no-such-ref", map[string]any{
		models.FieldStage: "Qualified",
	})
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresProspectSuite) TestCompanyIDUniqueViolation() {
	ctx := context.Background()
	_, err := s.store.Create(ctx, map[string]any{models.FieldCompanyID: "C1"})
	s.Require().NoError(err)

	_, err = s.store.Create(ctx, map[string]any{models.FieldCompanyID: "c1"})
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresProspectSuite) TestReadAllPreservesInsertionOrder() {
	ctx := context.Background()
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := s.store.Create(ctx, map[string]any{models.FieldCompanyName: name})
		s.Require().NoError(err)
	}

	all, err := s.store.ReadAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("Alpha", all[0].CompanyName)
	s.Equal("Beta", all[1].CompanyName)
	s.Equal("Gamma", all[2].CompanyName)
}
