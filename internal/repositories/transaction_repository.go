package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"playground_pos_backend/internal/models"
)

// TransactionRepository stores finalized checkouts. Transactions are append
// only; the sole destructive operation is the owner-level history wipe.
type TransactionRepository interface {
	CreateTransaction(executor SQLExecutor, tx *models.Transaction) (int64, error)
	CreateTransactionItems(executor SQLExecutor, transactionID int64, items []models.TransactionItem) error
	GetTransactionByID(id int64) (*models.Transaction, error)
	GetTransactions(filters models.TransactionFilters) ([]models.Transaction, int, error)
	SumRevenue(from, to time.Time) (int64, error)
	CountTransactions(from, to time.Time) (int, error)
	DeleteAllTransactions(executor SQLExecutor) error
}

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository.
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateTransaction(executor SQLExecutor, tx *models.Transaction) (int64, error) {
	var id int64
	query := `INSERT INTO transactions
	          (ticket_number, tx_date, customer_name, is_member, discount_percent, duration,
	           billable_hours, play_cost, order_cost, discount_amount, total_amount,
	           payment_method, bank_name, cash_received, change_given, cashier_name)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id`
	err := executor.QueryRow(query,
		tx.TicketNumber, tx.Date, tx.CustomerName, tx.IsMember, tx.DiscountPercent, tx.Duration,
		tx.BillableHours, tx.PlayCost, tx.OrderCost, tx.DiscountAmount, tx.TotalAmount,
		tx.PaymentMethod, tx.BankName, tx.CashReceived, tx.ChangeGiven, tx.CashierName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating transaction: %v", ErrDatabaseError, err)
	}
	return id, nil
}

func (r *transactionRepository) CreateTransactionItems(executor SQLExecutor, transactionID int64, items []models.TransactionItem) error {
	for i := range items {
		err := executor.QueryRow(
			`INSERT INTO transaction_items (transaction_id, name, price, qty)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			transactionID, items[i].Name, items[i].Price, items[i].Qty,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("%w: creating transaction item for %d: %v", ErrDatabaseError, transactionID, err)
		}
		items[i].TransactionID = transactionID
	}
	return nil
}

func (r *transactionRepository) GetTransactionByID(id int64) (*models.Transaction, error) {
	tx := &models.Transaction{}
	query := `SELECT id, ticket_number, tx_date, customer_name, is_member, discount_percent, duration,
	                 billable_hours, play_cost, order_cost, discount_amount, total_amount,
	                 payment_method, bank_name, cash_received, change_given, cashier_name
	          FROM transactions WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&tx.ID, &tx.TicketNumber, &tx.Date, &tx.CustomerName, &tx.IsMember, &tx.DiscountPercent, &tx.Duration,
		&tx.BillableHours, &tx.PlayCost, &tx.OrderCost, &tx.DiscountAmount, &tx.TotalAmount,
		&tx.PaymentMethod, &tx.BankName, &tx.CashReceived, &tx.ChangeGiven, &tx.CashierName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting transaction %d: %v", ErrDatabaseError, id, err)
	}

	items, err := r.getItems(id)
	if err != nil {
		return nil, err
	}
	tx.Items = items
	return tx, nil
}

func (r *transactionRepository) getItems(transactionID int64) ([]models.TransactionItem, error) {
	items := []models.TransactionItem{}
	rows, err := r.db.Query(
		`SELECT id, transaction_id, name, price, qty FROM transaction_items
		 WHERE transaction_id = $1 ORDER BY id ASC`,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying transaction items for %d: %v", ErrDatabaseError, transactionID, err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.TransactionItem{}
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.Name, &item.Price, &item.Qty); err != nil {
			return nil, fmt.Errorf("%w: scanning transaction item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transaction item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// GetTransactions lists finalized checkouts newest first, with optional date
// range, a search over ticket number and customer name, and pagination.
func (r *transactionRepository) GetTransactions(filters models.TransactionFilters) ([]models.Transaction, int, error) {
	transactions := []models.Transaction{}
	total := 0

	query := `SELECT id, ticket_number, tx_date, customer_name, is_member, discount_percent, duration,
	                 billable_hours, play_cost, order_cost, discount_amount, total_amount,
	                 payment_method, bank_name, cash_received, change_given, cashier_name,
	                 COUNT(*) OVER() AS total_count
	          FROM transactions WHERE 1=1`
	args := []interface{}{}

	if filters.From != nil {
		query += fmt.Sprintf(" AND tx_date >= $%d", len(args)+1)
		args = append(args, *filters.From)
	}
	if filters.To != nil {
		query += fmt.Sprintf(" AND tx_date < $%d", len(args)+1)
		args = append(args, *filters.To)
	}
	if filters.Search != nil && *filters.Search != "" {
		query += fmt.Sprintf(" AND (ticket_number ILIKE $%d OR customer_name ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+*filters.Search+"%")
	}

	query += " ORDER BY tx_date DESC, id DESC"
	if filters.PageSize > 0 {
		offset := 0
		if filters.Page > 1 {
			offset = (filters.Page - 1) * filters.PageSize
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filters.PageSize, offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		tx := models.Transaction{}
		err := rows.Scan(
			&tx.ID, &tx.TicketNumber, &tx.Date, &tx.CustomerName, &tx.IsMember, &tx.DiscountPercent, &tx.Duration,
			&tx.BillableHours, &tx.PlayCost, &tx.OrderCost, &tx.DiscountAmount, &tx.TotalAmount,
			&tx.PaymentMethod, &tx.BankName, &tx.CashReceived, &tx.ChangeGiven, &tx.CashierName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating transaction rows: %v", ErrDatabaseError, err)
	}
	return transactions, total, nil
}

func (r *transactionRepository) SumRevenue(from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(total_amount), 0) FROM transactions WHERE tx_date >= $1 AND tx_date < $2`,
		from, to,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("%w: summing revenue: %v", ErrDatabaseError, err)
	}
	return sum, nil
}

func (r *transactionRepository) CountTransactions(from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE tx_date >= $1 AND tx_date < $2`,
		from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting transactions: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// DeleteAllTransactions wipes the history. Items ride along on the cascade.
func (r *transactionRepository) DeleteAllTransactions(executor SQLExecutor) error {
	if _, err := executor.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("%w: deleting all transactions: %v", ErrDatabaseError, err)
	}
	return nil
}
