package models

import (
	prospectmodels "crmsync/internal/prospect/models"
)

// MatchType records which resolution tier produced a match.
type MatchType string

const (
	MatchExactID   MatchType = "exact-id"
	MatchExactName MatchType = "exact-name"
	MatchFuzzy     MatchType = "fuzzy"
	MatchNone      MatchType = "none"
)

// MatchResult is the outcome of resolving one event's company identity
// against the canonical store. Ephemeral: produced per company per run.
// A nil Prospect with MatchNone is a normal outcome, not an error.
type MatchResult struct {
	Prospect *prospectmodels.Prospect
	Type     MatchType
	// Distance is the edit distance for fuzzy matches; zero for exact tiers.
	Distance int
}

// CompanyError records a per-company failure that did not abort the run.
type CompanyError struct {
	CompanyKey string `json:"company_key"`
	Message    string `json:"message"`
}

// RunReport summarizes one reconciliation pass. It is the only externally
// visible result of a run: a single bad record never prevents the rest of
// the batch from completing, it just lands in Errors.
type RunReport struct {
	Updated   int            `json:"updated"`
	Created   int            `json:"created"`
	Unmatched int            `json:"unmatched"`
	Skipped   int            `json:"skipped"`
	Errors    []CompanyError `json:"errors,omitempty"`
}
