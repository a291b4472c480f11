package models

import (
	"strings"
	"time"
)

// RawEvent is one outreach interaction (visit, call, or email) exactly as it
// was read from the event log. It is immutable once read.
//
// Company identity on a raw event is unreliable: CompanyID and CompanyName may
// be empty, inconsistently cased, or misspelled relative to the prospect
// store. Resolution against the canonical store is the reconciliation
// engine's job, never the event producer's.
type RawEvent struct {
	EventID     string    `json:"event_id"`
	CompanyID   string    `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name"`
	EventDate   time.Time `json:"event_date"`
	Outcome     string    `json:"outcome"`
	Notes       string    `json:"notes,omitempty"`
}

// CompanyKey returns the grouping key used during aggregation: the company ID
// when present, otherwise the company name. An empty key means the event
// cannot be attributed to any company and must be dropped.
func (e RawEvent) CompanyKey() string {
	if id := strings.TrimSpace(e.CompanyID); id != "" {
		return id
	}
	return strings.TrimSpace(e.CompanyName)
}
