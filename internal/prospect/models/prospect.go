package models

import "time"

// UrgencyBand is the discretized measure of how overdue follow-up is.
type UrgencyBand string

const (
	UrgencyOverdue UrgencyBand = "Overdue"
	UrgencyHigh    UrgencyBand = "High"
	UrgencyMedium  UrgencyBand = "Medium"
	UrgencyLow     UrgencyBand = "Low"
)

// Prospect is the canonical, deduplicated record for one company.
//
// Invariants:
//   - CompanyID is unique across the store when non-empty
//   - RowRef is an opaque handle assigned by the store; the engine never
//     derives or interprets it, only passes it back for in-place updates
//   - Prospects are merged into or created by reconciliation, never deleted
type Prospect struct {
	RowRef           string      `json:"row_ref"`
	CompanyID        string      `json:"company_id"`
	CompanyName      string      `json:"company_name"`
	ContactStatus    string      `json:"contact_status"`
	Stage            string      `json:"stage"`
	LastOutcome      string      `json:"last_outcome"`
	LastContactDate  time.Time   `json:"last_contact_date"`
	DaysSinceContact int         `json:"days_since_contact"`
	NextStepsDue     time.Time   `json:"next_steps_due"`
	UrgencyScore     int         `json:"urgency_score"`
	UrgencyBand      UrgencyBand `json:"urgency_band"`
}

// Field names accepted by the store update/create operations. Stores must
// tolerate supersets of this list and ignore names they do not recognize.
const (
	FieldCompanyID        = "company_id"
	FieldCompanyName      = "company_name"
	FieldContactStatus    = "contact_status"
	FieldStage            = "stage"
	FieldLastOutcome      = "last_outcome"
	FieldLastContactDate  = "last_contact_date"
	FieldDaysSinceContact = "days_since_contact"
	FieldNextStepsDue     = "next_steps_due"
	FieldUrgencyScore     = "urgency_score"
	FieldUrgencyBand      = "urgency_band"
)

// ApplyFields merges a partial field map into the prospect. Unknown field
// names are ignored so callers may pass supersets.
func (p *Prospect) ApplyFields(fields map[string]any) {
	for name, value := range fields {
		switch name {
		case FieldCompanyID:
			if v, ok := value.(string); ok {
				p.CompanyID = v
			}
		case FieldCompanyName:
			if v, ok := value.(string); ok {
				p.CompanyName = v
			}
		case FieldContactStatus:
			if v, ok := value.(string); ok {
				p.ContactStatus = v
			}
		case FieldStage:
			if v, ok := value.(string); ok {
				p.Stage = v
			}
		case FieldLastOutcome:
			if v, ok := value.(string); ok {
				p.LastOutcome = v
			}
		case FieldLastContactDate:
			if v, ok := value.(time.Time); ok {
				p.LastContactDate = v
			}
		case FieldDaysSinceContact:
			if v, ok := value.(int); ok {
				p.DaysSinceContact = v
			}
		case FieldNextStepsDue:
			if v, ok := value.(time.Time); ok {
				p.NextStepsDue = v
			}
		case FieldUrgencyScore:
			if v, ok := value.(int); ok {
				p.UrgencyScore = v
			}
		case FieldUrgencyBand:
			switch v := value.(type) {
			case UrgencyBand:
				p.UrgencyBand = v
			case string:
				p.UrgencyBand = UrgencyBand(v)
			}
		}
	}
}
