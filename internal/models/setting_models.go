package models

import "time"

// Default business settings, used until the settings record is first saved.
const (
	DefaultTicketPrice    = 25000
	DefaultMemberDiscount = 10
	DefaultOpeningHours   = "09:00 - 21:00"
)

// Settings is the single business-configuration record: the hourly play rate,
// the member discount percentage and the displayed opening hours.
type Settings struct {
	TicketPrice    int64     `json:"ticket_price" db:"ticket_price"`
	MemberDiscount int       `json:"member_discount" db:"member_discount"`
	OpeningHours   string    `json:"opening_hours" db:"opening_hours"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		TicketPrice:    DefaultTicketPrice,
		MemberDiscount: DefaultMemberDiscount,
		OpeningHours:   DefaultOpeningHours,
	}
}
