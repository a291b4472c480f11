package models

import "time"

// Account is a prospect that reached the won stage and was promoted out of
// the active pipeline. Accounts are append-only: promotion never removes the
// originating prospect, it records the win.
type Account struct {
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	WonOutcome  string    `json:"won_outcome"`
	WonAt       time.Time `json:"won_at"`
}
