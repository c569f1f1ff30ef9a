package models

import "time"

// Member is a registered child with a playground membership card.
// The barcode is the business key printed on the card:
// BRANCH-DDMMYY-SSSS-MM/YY (branch code, child DOB, issue sequence,
// registration month/year).
type Member struct {
	ID           int64     `json:"id"`
	ChildName    string    `json:"child_name" db:"child_name"`
	Barcode      string    `json:"barcode" db:"barcode"`
	Branch       string    `json:"branch" db:"branch"`
	BirthPlace   *string   `json:"birth_place,omitempty" db:"birth_place"`
	Gender       *string   `json:"gender,omitempty" db:"gender"`
	DateOfBirth  string    `json:"date_of_birth" db:"date_of_birth"` // YYYY-MM-DD
	Phone        string    `json:"phone" db:"phone"`
	Address      *string   `json:"address,omitempty" db:"address"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Expired reports whether the membership has lapsed at the given instant.
func (m *Member) Expired(now time.Time) bool {
	return now.After(m.ExpiresAt)
}
