package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	outreachmodels "crmsync/internal/outreach/models"
	prospectmodels "crmsync/internal/prospect/models"
	"crmsync/internal/reconcile/models"
)

func prospect(rowRef, companyID, name string) *prospectmodels.Prospect {
	return &prospectmodels.Prospect{RowRef: rowRef, CompanyID: companyID, CompanyName: name}
}

func event(companyID, name string) outreachmodels.RawEvent {
	return outreachmodels.RawEvent{
		EventID:     "ev-1",
		CompanyID:   companyID,
		CompanyName: name,
		EventDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestResolveExactIDWinsOverCloserName(t *testing.T) {
	r := New()
	candidates := []*prospectmodels.Prospect{
		prospect("r1", "C-100", "Totally Different Name"),
		prospect("r2", "C-200", "Acme Corp"),
	}

	// the name matches r2 exactly, but the ID tier runs first and picks r1
	got := r.Resolve(event("c-100", "Acme Corp"), candidates)
	require.NotNil(t, got.Prospect)
	assert.Equal(t, "r1", got.Prospect.RowRef)
	assert.Equal(t, models.MatchExactID, got.Type)
}

func TestResolveExactNameNormalized(t *testing.T) {
	r := New()
	candidates := []*prospectmodels.Prospect{
		prospect("r1", "C-100", "  ACME CORP "),
	}

	got := r.Resolve(event("", "acme corp"), candidates)
	require.NotNil(t, got.Prospect)
	assert.Equal(t, models.MatchExactName, got.Type)
	assert.Equal(t, 0, got.Distance)
}

func TestResolveFuzzyPicksSmallestDistance(t *testing.T) {
	r := New()
	candidates := []*prospectmodels.Prospect{
		prospect("r1", "", "Acme Corpp"),
		prospect("r2", "", "Acme Corp."),
	}

	got := r.Resolve(event("", "Acme Cor"), candidates)
	require.NotNil(t, got.Prospect)
	assert.Equal(t, models.MatchFuzzy, got.Type)
	// r2 is distance 2, r1 also distance 2: tie keeps the first encountered
	assert.Equal(t, "r1", got.Prospect.RowRef)
	assert.Equal(t, 2, got.Distance)
}

func TestResolveFuzzyTieKeepsFirstCandidate(t *testing.T) {
	r := New()
	candidates := []*prospectmodels.Prospect{
		prospect("r1", "", "Acme Corx"),
		prospect("r2", "", "Acme Cory"),
	}

	got := r.Resolve(event("", "Acme Corp"), candidates)
	require.NotNil(t, got.Prospect)
	assert.Equal(t, models.MatchFuzzy, got.Type)
	assert.Equal(t, "r1", got.Prospect.RowRef)
}

func TestResolveNone(t *testing.T) {
	r := New()
	candidates := []*prospectmodels.Prospect{
		prospect("r1", "C-100", "Zephyr Industries"),
	}

	got := r.Resolve(event("", "Acme Corp"), candidates)
	assert.Nil(t, got.Prospect)
	assert.Equal(t, models.MatchNone, got.Type)
}

func TestResolveEmptyIdentityNeverMatches(t *testing.T) {
	r := New()
	candidates := []*prospectmodels.Prospect{
		prospect("r1", "", ""),
	}

	got := r.Resolve(event("", ""), candidates)
	assert.Equal(t, models.MatchNone, got.Type)
}
