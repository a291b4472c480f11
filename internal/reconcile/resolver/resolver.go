// Package resolver determines which canonical prospect, if any, a raw event
// refers to. Resolution is tiered: exact company ID, then exact company name,
// then fuzzy name matching. Failure to resolve is a normal outcome routed to
// entity creation, never an error.
package resolver

import (
	outreachmodels "crmsync/internal/outreach/models"
	prospectmodels "crmsync/internal/prospect/models"
	"crmsync/internal/reconcile/models"
	"crmsync/internal/reconcile/similarity"
)

// Resolver matches events against the full candidate set of prospects. The
// candidate set is always the bounded "all current prospects" collection; no
// index is built.
type Resolver struct {
	sim *similarity.Cache
}

func New() *Resolver {
	return &Resolver{sim: similarity.NewCache()}
}

// Resolve runs the tiered search, first match wins:
//
//  1. non-empty event company ID equal (normalized) to a candidate's ID
//  2. non-empty event company name equal (normalized) to a candidate's name
//  3. fuzzy: among candidates similar to the event name, the one with the
//     smallest edit distance; ties go to the first-encountered candidate in
//     input order
func (r *Resolver) Resolve(event outreachmodels.RawEvent, candidates []*prospectmodels.Prospect) models.MatchResult {
	if id := similarity.Normalize(event.CompanyID); id != "" {
		for _, c := range candidates {
			if similarity.Normalize(c.CompanyID) == id {
				return models.MatchResult{Prospect: c, Type: models.MatchExactID}
			}
		}
	}

	if name := similarity.Normalize(event.CompanyName); name != "" {
		for _, c := range candidates {
			if similarity.Normalize(c.CompanyName) == name {
				return models.MatchResult{Prospect: c, Type: models.MatchExactName}
			}
		}

		var (
			best     *prospectmodels.Prospect
			bestDist int
		)
		for _, c := range candidates {
			if !r.sim.Similar(event.CompanyName, c.CompanyName) {
				continue
			}
			d := similarity.EditDistance(event.CompanyName, c.CompanyName)
			// strictly smaller keeps the earliest candidate on ties
			if best == nil || d < bestDist {
				best, bestDist = c, d
			}
		}
		if best != nil {
			return models.MatchResult{Prospect: best, Type: models.MatchFuzzy, Distance: bestDist}
		}
	}

	return models.MatchResult{Type: models.MatchNone}
}
