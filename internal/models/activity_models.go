package models

import "time"

// MaxActivityLogs caps the activity log; the oldest entries are dropped when
// an insert would exceed it.
const MaxActivityLogs = 500

// ActivityLog is one line of the append-only audit trail.
type ActivityLog struct {
	ID       int64     `json:"id"`
	LoggedAt time.Time `json:"timestamp" db:"logged_at"`
	Actor    string    `json:"user" db:"actor"`
	Activity string    `json:"activity" db:"activity"`
}
