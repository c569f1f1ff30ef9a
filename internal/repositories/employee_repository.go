package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"playground_pos_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// EmployeeRepository defines the interface for employee-related database operations.
type EmployeeRepository interface {
	CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	GetEmployeeByPhone(phone string) (*models.Employee, error)
	GetEmployeeByEmployeeID(employeeID string) (*models.Employee, error)
	GetEmployees(page, pageSize int, searchTerm *string) ([]models.Employee, int, error)
	MaxIDNumberForPrefix(executor SQLExecutor, prefix string) (int, error)
	UpdateEmployee(executor SQLExecutor, employee *models.Employee) error
	DeleteEmployee(executor SQLExecutor, id int64) error
	CountEmployees() (int, error)
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, full_name, employee_id, role, phone, password_hash,
	to_char(date_of_birth, 'YYYY-MM-DD'), address, current_address, registered_at, created_at, updated_at`

func scanEmployee(s scanner) (*models.Employee, error) {
	e := &models.Employee{}
	var dob, address, currentAddress sql.NullString
	err := s.Scan(
		&e.ID, &e.FullName, &e.EmployeeID, &e.Role, &e.Phone, &e.PasswordHash,
		&dob, &address, &currentAddress, &e.RegisteredAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		e.DateOfBirth = &dob.String
	}
	if address.Valid {
		e.Address = &address.String
	}
	if currentAddress.Valid {
		e.CurrentAddress = &currentAddress.String
	}
	return e, nil
}

// CreateEmployee inserts a new employee into the database.
func (r *employeeRepository) CreateEmployee(executor SQLExecutor, employee *models.Employee) (int64, error) {
	query := `INSERT INTO employees (full_name, employee_id, role, phone, password_hash, date_of_birth, address, current_address, registered_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	if employee.RegisteredAt.IsZero() {
		employee.RegisteredAt = currentTime
	}
	employee.CreatedAt = currentTime
	employee.UpdatedAt = currentTime

	var dob sql.NullString
	if employee.DateOfBirth != nil && *employee.DateOfBirth != "" {
		dob = sql.NullString{String: *employee.DateOfBirth, Valid: true}
	}

	err := executor.QueryRow(query,
		employee.FullName, employee.EmployeeID, employee.Role, employee.Phone, employee.PasswordHash,
		dob, employee.Address, employee.CurrentAddress, employee.RegisteredAt, employee.CreatedAt, employee.UpdatedAt,
	).Scan(&employee.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				// The employee_id is allocated by us, not the caller;
				// surface that collision separately from a taken phone.
				if pqErr.Constraint == "employees_employee_id_key" {
					return 0, fmt.Errorf("%w: %s", ErrDuplicateEmployeeID, pqErr.Message)
				}
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee.ID, nil
}

// GetEmployeeByID retrieves an employee by primary key.
func (r *employeeRepository) GetEmployeeByID(id int64) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	employee, err := scanEmployee(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by ID %d: %v", ErrDatabaseError, id, err)
	}
	return employee, nil
}

// GetEmployeeByPhone retrieves an employee by phone number (the login key).
func (r *employeeRepository) GetEmployeeByPhone(phone string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE phone = $1`
	employee, err := scanEmployee(r.db.QueryRow(query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by phone %s: %v", ErrDatabaseError, phone, err)
	}
	return employee, nil
}

// GetEmployeeByEmployeeID retrieves an employee by the role-prefixed ID string.
func (r *employeeRepository) GetEmployeeByEmployeeID(employeeID string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	employee, err := scanEmployee(r.db.QueryRow(query, employeeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting employee by employee ID %s: %v", ErrDatabaseError, employeeID, err)
	}
	return employee, nil
}

// GetEmployees retrieves a list of employees with pagination and optional search.
func (r *employeeRepository) GetEmployees(page, pageSize int, searchTerm *string) ([]models.Employee, int, error) {
	employees := []models.Employee{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + employeeColumns + `, COUNT(*) OVER() as total_count FROM employees`)

	var args []interface{}
	argCount := 1

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(*searchTerm) + "%"
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (LOWER(full_name) ILIKE $%d OR LOWER(employee_id) ILIKE $%d OR phone ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY full_name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			offset := (page - 1) * pageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		e := models.Employee{}
		var dob, address, currentAddress sql.NullString
		if err := rows.Scan(
			&e.ID, &e.FullName, &e.EmployeeID, &e.Role, &e.Phone, &e.PasswordHash,
			&dob, &address, &currentAddress, &e.RegisteredAt, &e.CreatedAt, &e.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
		}
		if dob.Valid {
			e.DateOfBirth = &dob.String
		}
		if address.Valid {
			e.Address = &address.String
		}
		if currentAddress.Valid {
			e.CurrentAddress = &currentAddress.String
		}
		employees = append(employees, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}

	return employees, totalCount, nil
}

// MaxIDNumberForPrefix returns the highest numeric suffix among employee IDs
// with the given role prefix, 0 when none exist. Used to allocate the next ID;
// callers registering an employee pass their *sql.Tx so the read and the
// insert share one snapshot.
func (r *employeeRepository) MaxIDNumberForPrefix(executor SQLExecutor, prefix string) (int, error) {
	query := `SELECT COALESCE(MAX(CAST(SPLIT_PART(employee_id, '-', 2) AS INTEGER)), 0)
	          FROM employees WHERE employee_id LIKE $1 || '-%'`
	var max int
	if err := executor.QueryRow(query, prefix).Scan(&max); err != nil {
		return 0, fmt.Errorf("%w: getting max employee ID for prefix %s: %v", ErrDatabaseError, prefix, err)
	}
	return max, nil
}

// UpdateEmployee updates an existing employee in the database.
func (r *employeeRepository) UpdateEmployee(executor SQLExecutor, employee *models.Employee) error {
	query := `UPDATE employees SET
	            full_name = $1, role = $2, phone = $3, password_hash = $4,
	            date_of_birth = $5, address = $6, current_address = $7, updated_at = $8
	          WHERE id = $9`

	employee.UpdatedAt = time.Now()
	var dob sql.NullString
	if employee.DateOfBirth != nil && *employee.DateOfBirth != "" {
		dob = sql.NullString{String: *employee.DateOfBirth, Valid: true}
	}

	result, err := executor.Exec(query,
		employee.FullName, employee.Role, employee.Phone, employee.PasswordHash,
		dob, employee.Address, employee.CurrentAddress, employee.UpdatedAt, employee.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating employee ID %d: %v", ErrDatabaseError, employee.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating employee ID %d: %v", ErrDatabaseError, employee.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEmployee removes an employee from the database.
func (r *employeeRepository) DeleteEmployee(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting employee ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting employee ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountEmployees returns the number of registered employees.
func (r *employeeRepository) CountEmployees() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting employees: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}
