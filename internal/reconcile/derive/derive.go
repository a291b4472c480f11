// Package derive computes the time-based scoring fields merged into a
// prospect: days since last contact, urgency, and the next-steps due date.
package derive

import (
	"time"

	outreachmodels "crmsync/internal/outreach/models"
	prospectmodels "crmsync/internal/prospect/models"
	"crmsync/internal/reconcile/rules"
)

// Urgency breakpoints and scores are fixed business constants, not
// configuration.
const (
	ScoreOverdue = 150
	ScoreHigh    = 115
	ScoreMedium  = 75
	ScoreLow     = 25

	highWindowDays   = 7
	mediumWindowDays = 30
)

// Derived holds the computed scoring fields for one company.
type Derived struct {
	DaysSinceContact int
	UrgencyScore     int
	UrgencyBand      prospectmodels.UrgencyBand
	NextStepsDue     time.Time
}

// Derive computes all derived fields from the latest event and a reference
// date. The follow-up offset comes from the rule table (DefaultDayOffset
// when the outcome is unrecognized).
func Derive(latest outreachmodels.RawEvent, ref time.Time, table *rules.Table) Derived {
	days := DaysBetween(latest.EventDate, ref)
	band, score := Urgency(days)
	offset := table.Lookup(latest.Outcome).DayOffset
	return Derived{
		DaysSinceContact: days,
		UrgencyScore:     score,
		UrgencyBand:      band,
		NextStepsDue:     latest.EventDate.AddDate(0, 0, offset),
	}
}

// DaysBetween returns the whole-day difference to - from. Both dates are
// normalized to midnight first so time of day never affects the result.
func DaysBetween(from, to time.Time) int {
	return int(midnight(to).Sub(midnight(from)).Hours() / 24)
}

// Urgency is a pure step function of days since contact, evaluated in fixed
// order: negative elapsed time means the contact date is in the future and
// follow-up is tracked as overdue planning.
func Urgency(daysSinceContact int) (prospectmodels.UrgencyBand, int) {
	switch {
	case daysSinceContact < 0:
		return prospectmodels.UrgencyOverdue, ScoreOverdue
	case daysSinceContact <= highWindowDays:
		return prospectmodels.UrgencyHigh, ScoreHigh
	case daysSinceContact <= mediumWindowDays:
		return prospectmodels.UrgencyMedium, ScoreMedium
	default:
		return prospectmodels.UrgencyLow, ScoreLow
	}
}

// NewContactUrgency returns the urgency assigned to a brand-new prospect. A
// first contact is always due soon, so the step function is bypassed.
func NewContactUrgency() (prospectmodels.UrgencyBand, int) {
	return prospectmodels.UrgencyHigh, ScoreHigh
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
