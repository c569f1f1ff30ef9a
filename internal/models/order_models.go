package models

// OrderItem is one line of a visitor's cafe order, keyed by the visit's
// daily sequence. Price is the unit price captured when the line was added.
type OrderItem struct {
	ID              int64  `json:"id"`
	DailySequence   string `json:"daily_sequence" db:"daily_sequence"`
	InventoryItemID int64  `json:"item_id" db:"inventory_item_id"`
	Name            string `json:"name" db:"name"`
	Price           int64  `json:"price" db:"price"`
	Qty             int    `json:"qty" db:"qty"`
}

// LineTotal is price times quantity for the line.
func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Qty)
}

// OpenOrder groups the order lines of one active visit.
type OpenOrder struct {
	DailySequence string      `json:"daily_sequence"`
	ChildName     string      `json:"child_name"`
	Items         []OrderItem `json:"items"`
	Total         int64       `json:"total"`
}
