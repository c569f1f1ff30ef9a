package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"playground_pos_backend/internal/models"
)

// InventoryRepository manages cafe stock items.
type InventoryRepository interface {
	CreateInventoryItem(executor SQLExecutor, item *models.InventoryItem) (int64, error)
	GetInventoryItemByID(id int64) (*models.InventoryItem, error)
	GetInventoryItems(category string, limit, offset int) ([]models.InventoryItem, int, error)
	UpdateInventoryItem(executor SQLExecutor, item *models.InventoryItem) error
	DeleteInventoryItem(executor SQLExecutor, id int64) error
	DecrementStock(executor SQLExecutor, id int64, qty int) error
	IncrementStock(executor SQLExecutor, id int64, qty int) error
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateInventoryItem(executor SQLExecutor, item *models.InventoryItem) (int64, error) {
	var id int64
	query := `INSERT INTO inventory_items (name, item_type, price, stock, category, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING id`
	err := executor.QueryRow(query, item.Name, item.ItemType, item.Price, item.Stock, item.Category).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	return id, nil
}

func (r *inventoryRepository) GetInventoryItemByID(id int64) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	query := `SELECT id, name, item_type, price, stock, category, created_at, updated_at
	          FROM inventory_items WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&item.ID, &item.Name, &item.ItemType, &item.Price, &item.Stock, &item.Category,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory item %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetInventoryItems lists stock items, optionally filtered by category.
func (r *inventoryRepository) GetInventoryItems(category string, limit, offset int) ([]models.InventoryItem, int, error) {
	items := []models.InventoryItem{}
	total := 0

	query := `SELECT id, name, item_type, price, stock, category, created_at, updated_at,
	                 COUNT(*) OVER() AS total_count
	          FROM inventory_items`
	args := []interface{}{}
	if category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", len(args)+1)
		args = append(args, category)
	}
	query += " ORDER BY name ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying inventory items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.InventoryItem{}
		err := rows.Scan(
			&item.ID, &item.Name, &item.ItemType, &item.Price, &item.Stock, &item.Category,
			&item.CreatedAt, &item.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating inventory item rows: %v", ErrDatabaseError, err)
	}
	return items, total, nil
}

func (r *inventoryRepository) UpdateInventoryItem(executor SQLExecutor, item *models.InventoryItem) error {
	result, err := executor.Exec(
		`UPDATE inventory_items SET name = $1, item_type = $2, price = $3, stock = $4, category = $5,
		        updated_at = NOW()
		 WHERE id = $6`,
		item.Name, item.ItemType, item.Price, item.Stock, item.Category, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating inventory item %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected updating inventory item %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteInventoryItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory item %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected deleting inventory item %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock subtracts qty from an item's stock. The guard in the WHERE
// clause keeps stock from going negative under concurrent checkouts; zero
// rows affected means the item is gone or stock ran short.
func (r *inventoryRepository) DecrementStock(executor SQLExecutor, id int64, qty int) error {
	result, err := executor.Exec(
		`UPDATE inventory_items SET stock = stock - $1, updated_at = NOW()
		 WHERE id = $2 AND stock >= $1`,
		qty, id,
	)
	if err != nil {
		return fmt.Errorf("%w: decrementing stock for item %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected decrementing stock for item %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStock returns qty to an item's stock, used when an order line is
// removed or shrunk before checkout.
func (r *inventoryRepository) IncrementStock(executor SQLExecutor, id int64, qty int) error {
	result, err := executor.Exec(
		`UPDATE inventory_items SET stock = stock + $1, updated_at = NOW() WHERE id = $2`,
		qty, id,
	)
	if err != nil {
		return fmt.Errorf("%w: incrementing stock for item %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected incrementing stock for item %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
