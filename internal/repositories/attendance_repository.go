package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"playground_pos_backend/internal/models"

	"github.com/lib/pq"
)

// AttendanceRepository defines the interface for attendance database operations.
type AttendanceRepository interface {
	GetEntryForDay(employeeID, date string) (*models.AttendanceEntry, error)
	CreateEntry(executor SQLExecutor, entry *models.AttendanceEntry) (int64, error)
	SetTimeOut(executor SQLExecutor, id int64, timeOut string) error
	GetEntries(date *string, page, pageSize int) ([]models.AttendanceEntry, int, error)
	CloseOpenEntriesForDay(executor SQLExecutor, date, timeOut string) (int64, error)
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendanceEntry(s scanner) (*models.AttendanceEntry, error) {
	e := &models.AttendanceEntry{}
	var timeOut sql.NullString
	if err := s.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Date, &e.TimeIn, &timeOut); err != nil {
		return nil, err
	}
	if timeOut.Valid {
		e.TimeOut = &timeOut.String
	}
	e.Status = e.StatusOf()
	return e, nil
}

// GetEntryForDay returns the single attendance entry for one employee and
// calendar day, or ErrNotFound when the employee has not clocked in.
func (r *attendanceRepository) GetEntryForDay(employeeID, date string) (*models.AttendanceEntry, error) {
	query := `SELECT id, employee_id, name, to_char(day, 'YYYY-MM-DD'), time_in, time_out
	          FROM attendance WHERE employee_id = $1 AND day = $2`
	entry, err := scanAttendanceEntry(r.db.QueryRow(query, employeeID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting attendance for %s on %s: %v", ErrDatabaseError, employeeID, date, err)
	}
	return entry, nil
}

// CreateEntry records a clock-in. The (employee_id, day) unique constraint
// rejects a second clock-in for the same day at the storage layer as well.
func (r *attendanceRepository) CreateEntry(executor SQLExecutor, entry *models.AttendanceEntry) (int64, error) {
	query := `INSERT INTO attendance (employee_id, name, day, time_in)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	err := executor.QueryRow(query, entry.EmployeeID, entry.Name, entry.Date, entry.TimeIn).Scan(&entry.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating attendance entry: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

// SetTimeOut records a clock-out on an open entry. Entries that already have
// a time_out are not touched; the caller treats 0 rows as an illegal transition.
func (r *attendanceRepository) SetTimeOut(executor SQLExecutor, id int64, timeOut string) error {
	result, err := executor.Exec(`UPDATE attendance SET time_out = $1 WHERE id = $2 AND time_out IS NULL`, timeOut, id)
	if err != nil {
		return fmt.Errorf("%w: setting time out for attendance ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for attendance ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetEntries lists attendance entries, optionally restricted to one day.
func (r *attendanceRepository) GetEntries(date *string, page, pageSize int) ([]models.AttendanceEntry, int, error) {
	entries := []models.AttendanceEntry{}
	totalCount := 0

	query := `SELECT id, employee_id, name, to_char(day, 'YYYY-MM-DD'), time_in, time_out, COUNT(*) OVER() as total_count
	          FROM attendance`
	var args []interface{}
	argCount := 1
	if date != nil && *date != "" {
		query += fmt.Sprintf(" WHERE day = $%d", argCount)
		args = append(args, *date)
		argCount++
	}
	query += " ORDER BY day DESC, time_in DESC"
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argCount)
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying attendance: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		e := models.AttendanceEntry{}
		var timeOut sql.NullString
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Date, &e.TimeIn, &timeOut, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning attendance entry: %v", ErrDatabaseError, err)
		}
		if timeOut.Valid {
			e.TimeOut = &timeOut.String
		}
		e.Status = e.StatusOf()
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating attendance rows: %v", ErrDatabaseError, err)
	}

	return entries, totalCount, nil
}

// CloseOpenEntriesForDay stamps a time_out on every still-open entry of the
// given day. Run by the nightly maintenance job.
func (r *attendanceRepository) CloseOpenEntriesForDay(executor SQLExecutor, date, timeOut string) (int64, error) {
	result, err := executor.Exec(`UPDATE attendance SET time_out = $1 WHERE day = $2 AND time_out IS NULL`, timeOut, date)
	if err != nil {
		return 0, fmt.Errorf("%w: closing open attendance for %s: %v", ErrDatabaseError, date, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected closing attendance for %s: %v", ErrDatabaseError, date, err)
	}
	return rowsAffected, nil
}
