package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	outreachmodels "crmsync/internal/outreach/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestLatestPerCompanyKeepsGreatestDate(t *testing.T) {
	a := New(nil)
	events := []outreachmodels.RawEvent{
		{EventID: "e1", CompanyID: "C1", EventDate: day(5), Outcome: "Initial Contact"},
		{EventID: "e2", CompanyID: "C1", EventDate: day(10), Outcome: "No Answer"},
		{EventID: "e3", CompanyID: "C1", EventDate: day(3), Outcome: "Follow-up"},
	}

	latest, skipped := a.LatestPerCompany(events)
	require.Len(t, latest, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, "e2", latest["C1"].EventID)
}

func TestLatestPerCompanyTieGoesToLaterInput(t *testing.T) {
	a := New(nil)
	events := []outreachmodels.RawEvent{
		{EventID: "e1", CompanyID: "C1", EventDate: day(10), Outcome: "Initial Contact"},
		{EventID: "e2", CompanyID: "C1", EventDate: day(10), Outcome: "Interested"},
	}

	latest, _ := a.LatestPerCompany(events)
	assert.Equal(t, "e2", latest["C1"].EventID)
}

func TestLatestPerCompanyGroupsByNameWhenIDMissing(t *testing.T) {
	a := New(nil)
	events := []outreachmodels.RawEvent{
		{EventID: "e1", CompanyName: "Acme Corp", EventDate: day(5)},
		{EventID: "e2", CompanyName: "Acme Corp", EventDate: day(8)},
		{EventID: "e3", CompanyID: "C9", CompanyName: "Acme Corp", EventDate: day(1)},
	}

	latest, skipped := a.LatestPerCompany(events)
	assert.Zero(t, skipped)
	// the ID-bearing event groups separately from the name-only ones
	require.Len(t, latest, 2)
	assert.Equal(t, "e2", latest["Acme Corp"].EventID)
	assert.Equal(t, "e3", latest["C9"].EventID)
}

func TestLatestPerCompanyDropsKeylessEvents(t *testing.T) {
	a := New(nil)
	events := []outreachmodels.RawEvent{
		{EventID: "e1", EventDate: day(5)},
		{EventID: "e2", CompanyName: "   ", EventDate: day(6)},
		{EventID: "e3", CompanyID: "C1", EventDate: day(7)},
	}

	latest, skipped := a.LatestPerCompany(events)
	assert.Equal(t, 2, skipped)
	require.Len(t, latest, 1)
	assert.Equal(t, "e3", latest["C1"].EventID)
}

func TestLatestPerCompanyEmptyInput(t *testing.T) {
	a := New(nil)
	latest, skipped := a.LatestPerCompany(nil)
	assert.Empty(t, latest)
	assert.Zero(t, skipped)
}
