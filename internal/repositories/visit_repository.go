package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"playground_pos_backend/internal/models"

	"github.com/lib/pq"
)

// VisitRepository covers the active-customer list and the daily ticket counter.
type VisitRepository interface {
	CreateActiveCustomer(executor SQLExecutor, customer *models.ActiveCustomer) (int64, error)
	GetActiveCustomerBySequence(sequence string) (*models.ActiveCustomer, error)
	GetActiveCustomerByBarcode(barcode string) (*models.ActiveCustomer, error)
	GetActiveCustomers() ([]models.ActiveCustomer, error)
	DeleteActiveCustomer(executor SQLExecutor, sequence string) error

	PeekSequence() (*models.DailySequenceState, error)
	CommitSequence(executor SQLExecutor, date string) (int, error)
}

type visitRepository struct {
	db *sql.DB
}

// NewVisitRepository creates a new instance of VisitRepository.
func NewVisitRepository(db *sql.DB) VisitRepository {
	return &visitRepository{db: db}
}

const activeCustomerColumns = `id, daily_sequence, child_name, phone, barcode, is_member, discount_percent, checked_in_at`

func scanActiveCustomer(s scanner) (*models.ActiveCustomer, error) {
	c := &models.ActiveCustomer{}
	var barcode sql.NullString
	err := s.Scan(&c.ID, &c.DailySequence, &c.ChildName, &c.Phone, &barcode, &c.IsMember, &c.DiscountPercent, &c.CheckedInAt)
	if err != nil {
		return nil, err
	}
	if barcode.Valid {
		c.Barcode = &barcode.String
	}
	return c, nil
}

// CreateActiveCustomer inserts a checked-in visitor.
func (r *visitRepository) CreateActiveCustomer(executor SQLExecutor, customer *models.ActiveCustomer) (int64, error) {
	query := `INSERT INTO active_customers (daily_sequence, child_name, phone, barcode, is_member, discount_percent, checked_in_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := executor.QueryRow(query,
		customer.DailySequence, customer.ChildName, customer.Phone, customer.Barcode,
		customer.IsMember, customer.DiscountPercent, customer.CheckedInAt,
	).Scan(&customer.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating active customer: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

// GetActiveCustomerBySequence retrieves an on-site visitor by ticket number.
func (r *visitRepository) GetActiveCustomerBySequence(sequence string) (*models.ActiveCustomer, error) {
	query := `SELECT ` + activeCustomerColumns + ` FROM active_customers WHERE daily_sequence = $1`
	customer, err := scanActiveCustomer(r.db.QueryRow(query, sequence))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting active customer %s: %v", ErrDatabaseError, sequence, err)
	}
	return customer, nil
}

// GetActiveCustomerByBarcode finds an on-site member visit by card barcode.
// Used to reject a member checking in twice.
func (r *visitRepository) GetActiveCustomerByBarcode(barcode string) (*models.ActiveCustomer, error) {
	query := `SELECT ` + activeCustomerColumns + ` FROM active_customers WHERE barcode = $1`
	customer, err := scanActiveCustomer(r.db.QueryRow(query, barcode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting active customer by barcode %s: %v", ErrDatabaseError, barcode, err)
	}
	return customer, nil
}

// GetActiveCustomers lists everyone currently on-site, newest first.
func (r *visitRepository) GetActiveCustomers() ([]models.ActiveCustomer, error) {
	customers := []models.ActiveCustomer{}
	query := `SELECT ` + activeCustomerColumns + ` FROM active_customers ORDER BY checked_in_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		c := models.ActiveCustomer{}
		var barcode sql.NullString
		if err := rows.Scan(&c.ID, &c.DailySequence, &c.ChildName, &c.Phone, &barcode, &c.IsMember, &c.DiscountPercent, &c.CheckedInAt); err != nil {
			return nil, fmt.Errorf("%w: scanning active customer: %v", ErrDatabaseError, err)
		}
		if barcode.Valid {
			c.Barcode = &barcode.String
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating active customer rows: %v", ErrDatabaseError, err)
	}
	return customers, nil
}

// DeleteActiveCustomer removes a visitor by ticket number. The ticket number
// is the removal key; phone numbers are not unique among walk-in guests.
func (r *visitRepository) DeleteActiveCustomer(executor SQLExecutor, sequence string) error {
	result, err := executor.Exec(`DELETE FROM active_customers WHERE daily_sequence = $1`, sequence)
	if err != nil {
		return fmt.Errorf("%w: deleting active customer %s: %v", ErrDatabaseError, sequence, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for active customer %s: %v", ErrDatabaseError, sequence, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PeekSequence reads the persisted counter without advancing it. A missing
// row reads as a fresh counter.
func (r *visitRepository) PeekSequence() (*models.DailySequenceState, error) {
	state := &models.DailySequenceState{}
	query := `SELECT to_char(seq_date, 'YYYY-MM-DD'), next_number FROM daily_sequence WHERE id = 1`
	err := r.db.QueryRow(query).Scan(&state.Date, &state.NextNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: reading daily sequence: %v", ErrDatabaseError, err)
	}
	return state, nil
}

// CommitSequence atomically assigns and returns the next ticket number for
// the given date. A date rollover restarts the counter at 1 in the same
// statement, so peek/commit races cannot reuse a committed number.
func (r *visitRepository) CommitSequence(executor SQLExecutor, date string) (int, error) {
	query := `INSERT INTO daily_sequence (id, seq_date, next_number) VALUES (1, $1, 2)
	          ON CONFLICT (id) DO UPDATE SET
	            next_number = CASE WHEN daily_sequence.seq_date = EXCLUDED.seq_date
	                               THEN daily_sequence.next_number + 1 ELSE 2 END,
	            seq_date = EXCLUDED.seq_date
	          RETURNING next_number - 1`
	var assigned int
	if err := executor.QueryRow(query, date).Scan(&assigned); err != nil {
		return 0, fmt.Errorf("%w: committing daily sequence for %s: %v", ErrDatabaseError, date, err)
	}
	return assigned, nil
}
