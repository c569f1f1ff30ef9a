package models

import "time"

// Inventory categories.
const (
	CategoryFood  = "food"
	CategoryDrink = "drink"
	CategoryGoods = "goods"
)

// InventoryItem is a sellable cafe/shop item. Stock is decremented when a
// checkout is finalized, never below zero.
type InventoryItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" db:"name"`
	ItemType  *string   `json:"type,omitempty" db:"item_type"`
	Price     int64     `json:"price" db:"price"`
	Stock     int       `json:"stock" db:"stock"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Asset is a fixed asset of the playground (slides, ball pits, furniture).
type Asset struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" db:"name"`
	AssetType    string    `json:"type" db:"asset_type"`
	PurchaseDate string    `json:"purchase_date" db:"purchase_date"` // YYYY-MM-DD
	Quantity     int       `json:"quantity" db:"quantity"`
	Value        int64     `json:"value" db:"value"`
	Condition    string    `json:"condition" db:"condition"`
	Location     string    `json:"location" db:"location"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
