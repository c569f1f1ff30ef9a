package models

import "time"

// Payment methods accepted at the cashier.
const (
	PaymentCash  = "Cash"
	PaymentDebit = "Debit"
	PaymentKartu = "Kartu"
	PaymentQRIS  = "QRIS"
)

// Transaction is the frozen snapshot of one completed checkout. Created once
// at finalize, immutable thereafter.
type Transaction struct {
	ID              int64             `json:"id"`
	TicketNumber    string            `json:"ticket_number" db:"ticket_number"`
	Date            time.Time         `json:"date" db:"tx_date"`
	CustomerName    string            `json:"customer_name" db:"customer_name"`
	IsMember        bool              `json:"is_member" db:"is_member"`
	DiscountPercent int               `json:"discount_percent" db:"discount_percent"`
	Duration        string            `json:"duration" db:"duration"`
	BillableHours   int               `json:"billable_hours" db:"billable_hours"`
	PlayCost        int64             `json:"play_cost" db:"play_cost"`
	OrderCost       int64             `json:"order_cost" db:"order_cost"`
	DiscountAmount  int64             `json:"discount_amount" db:"discount_amount"`
	TotalAmount     int64             `json:"total_amount" db:"total_amount"`
	PaymentMethod   string            `json:"payment_method" db:"payment_method"`
	BankName        *string           `json:"bank_name,omitempty" db:"bank_name"` // bank or QRIS provider
	CashReceived    *int64            `json:"cash_received,omitempty" db:"cash_received"`
	ChangeGiven     *int64            `json:"change_given,omitempty" db:"change_given"`
	CashierName     string            `json:"cashier_name" db:"cashier_name"`
	Items           []TransactionItem `json:"items,omitempty"`
}

// TransactionItem is one cafe order line frozen into a transaction.
type TransactionItem struct {
	ID            int64  `json:"id"`
	TransactionID int64  `json:"-" db:"transaction_id"`
	Name          string `json:"name" db:"name"`
	Price         int64  `json:"price" db:"price"`
	Qty           int    `json:"qty" db:"qty"`
}

// TransactionFilters narrows transaction listings.
type TransactionFilters struct {
	From     *time.Time
	To       *time.Time
	Search   *string
	Page     int
	PageSize int
}

// DashboardSummary backs the dashboard landing page.
type DashboardSummary struct {
	TodayRevenue  int64 `json:"today_revenue"`
	TodayVisitors int   `json:"today_visitors"`
	MemberCount   int   `json:"member_count"`
	EmployeeCount int   `json:"employee_count"`
}
