package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"playground_pos_backend/internal/models"
)

// OrderRepository manages the per-ticket cafe order lines.
type OrderRepository interface {
	GetOrderItems(sequence string) ([]models.OrderItem, error)
	GetOrderItem(sequence string, inventoryItemID int64) (*models.OrderItem, error)
	UpsertOrderItem(executor SQLExecutor, item *models.OrderItem) error
	UpdateOrderItemQty(executor SQLExecutor, sequence string, inventoryItemID int64, qty int) error
	DeleteOrderItem(executor SQLExecutor, sequence string, inventoryItemID int64) error
	DeleteOrder(executor SQLExecutor, sequence string) error
	GetOpenOrderSequences() ([]string, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// GetOrderItems returns all order lines for a ticket, oldest first.
func (r *orderRepository) GetOrderItems(sequence string) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `SELECT id, daily_sequence, inventory_item_id, name, price, qty
	          FROM customer_order_items WHERE daily_sequence = $1 ORDER BY id ASC`
	rows, err := r.db.Query(query, sequence)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for %s: %v", ErrDatabaseError, sequence, err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.DailySequence, &item.InventoryItemID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// GetOrderItem returns one line of a ticket's order, if present.
func (r *orderRepository) GetOrderItem(sequence string, inventoryItemID int64) (*models.OrderItem, error) {
	item := &models.OrderItem{}
	query := `SELECT id, daily_sequence, inventory_item_id, name, price, qty
	          FROM customer_order_items WHERE daily_sequence = $1 AND inventory_item_id = $2`
	err := r.db.QueryRow(query, sequence, inventoryItemID).Scan(
		&item.ID, &item.DailySequence, &item.InventoryItemID, &item.Name, &item.Price, &item.Qty,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order item %d for %s: %v", ErrDatabaseError, inventoryItemID, sequence, err)
	}
	return item, nil
}

// UpsertOrderItem adds a line to a ticket's order, accumulating quantity when
// the item is already in the order.
func (r *orderRepository) UpsertOrderItem(executor SQLExecutor, item *models.OrderItem) error {
	query := `INSERT INTO customer_order_items (daily_sequence, inventory_item_id, name, price, qty)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (daily_sequence, inventory_item_id)
	          DO UPDATE SET qty = customer_order_items.qty + EXCLUDED.qty
	          RETURNING id, qty`
	err := executor.QueryRow(query, item.DailySequence, item.InventoryItemID, item.Name, item.Price, item.Qty).
		Scan(&item.ID, &item.Qty)
	if err != nil {
		return fmt.Errorf("%w: upserting order item for %s: %v", ErrDatabaseError, item.DailySequence, err)
	}
	return nil
}

// UpdateOrderItemQty overwrites the quantity of an existing line.
func (r *orderRepository) UpdateOrderItemQty(executor SQLExecutor, sequence string, inventoryItemID int64, qty int) error {
	result, err := executor.Exec(
		`UPDATE customer_order_items SET qty = $1 WHERE daily_sequence = $2 AND inventory_item_id = $3`,
		qty, sequence, inventoryItemID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order item qty for %s: %v", ErrDatabaseError, sequence, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected updating order item for %s: %v", ErrDatabaseError, sequence, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrderItem removes one line from a ticket's order.
func (r *orderRepository) DeleteOrderItem(executor SQLExecutor, sequence string, inventoryItemID int64) error {
	result, err := executor.Exec(
		`DELETE FROM customer_order_items WHERE daily_sequence = $1 AND inventory_item_id = $2`,
		sequence, inventoryItemID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting order item for %s: %v", ErrDatabaseError, sequence, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected deleting order item for %s: %v", ErrDatabaseError, sequence, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder drops every line of a ticket's order. Deleting a nonexistent
// order is not an error; checkout of a visitor with no order is normal.
func (r *orderRepository) DeleteOrder(executor SQLExecutor, sequence string) error {
	if _, err := executor.Exec(`DELETE FROM customer_order_items WHERE daily_sequence = $1`, sequence); err != nil {
		return fmt.Errorf("%w: deleting order for %s: %v", ErrDatabaseError, sequence, err)
	}
	return nil
}

// GetOpenOrderSequences lists the ticket numbers that currently have order lines.
func (r *orderRepository) GetOpenOrderSequences() ([]string, error) {
	sequences := []string{}
	rows, err := r.db.Query(`SELECT DISTINCT daily_sequence FROM customer_order_items ORDER BY daily_sequence ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying open order sequences: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var seq string
		if err := rows.Scan(&seq); err != nil {
			return nil, fmt.Errorf("%w: scanning open order sequence: %v", ErrDatabaseError, err)
		}
		sequences = append(sequences, seq)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating open order sequences: %v", ErrDatabaseError, err)
	}
	return sequences, nil
}
