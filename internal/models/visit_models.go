package models

import "time"

// ActiveCustomer is a visitor currently checked in and not yet billed.
// DailySequence is the ticket number for the visit and the correlation key
// for the visit's cafe order.
type ActiveCustomer struct {
	ID              int64     `json:"id"`
	DailySequence   string    `json:"daily_sequence" db:"daily_sequence"`
	ChildName       string    `json:"child_name" db:"child_name"`
	Phone           string    `json:"phone" db:"phone"`
	Barcode         *string   `json:"barcode,omitempty" db:"barcode"`
	IsMember        bool      `json:"is_member" db:"is_member"`
	DiscountPercent int       `json:"discount_percent" db:"discount_percent"`
	CheckedInAt     time.Time `json:"checked_in_at" db:"checked_in_at"`
}

// DailySequenceState is the persisted per-day ticket counter.
// NextNumber is the next candidate; a differing Date means the counter has
// not rolled over yet and the effective candidate is 1.
type DailySequenceState struct {
	Date       string `json:"date"` // YYYY-MM-DD
	NextNumber int    `json:"next_number"`
}
