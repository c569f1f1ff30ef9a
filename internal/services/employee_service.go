package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrPhoneAlreadyUsed    = errors.New("phone number already registered")
	ErrEmployeeIDTaken     = errors.New("staff ID already taken, retry the registration")
	ErrUnknownRole         = errors.New("unknown employee role")
	ErrLastOwnerProtection = errors.New("the last owner account cannot be removed")
)

const minPasswordLength = 6

// RegisterEmployeeRequest carries a new staff registration.
type RegisterEmployeeRequest struct {
	FullName       string  `json:"fullname" binding:"required"`
	Role           string  `json:"role" binding:"required"`
	Phone          string  `json:"phone" binding:"required"`
	Password       string  `json:"password" binding:"required"`
	DateOfBirth    *string `json:"date_of_birth"`
	Address        *string `json:"address"`
	CurrentAddress *string `json:"current_address"`
}

// UpdateEmployeeRequest carries a partial staff update. Nil fields are left
// unchanged.
type UpdateEmployeeRequest struct {
	FullName       *string `json:"fullname"`
	Phone          *string `json:"phone"`
	Password       *string `json:"password"`
	DateOfBirth    *string `json:"date_of_birth"`
	Address        *string `json:"address"`
	CurrentAddress *string `json:"current_address"`
}

type EmployeeService interface {
	RegisterEmployee(req RegisterEmployeeRequest) (*models.Employee, error)
	GetEmployeeByID(id int64) (*models.Employee, error)
	GetEmployees(page, pageSize int, searchTerm *string) ([]models.Employee, int, error)
	UpdateEmployee(id int64, req UpdateEmployeeRequest) (*models.Employee, error)
	DeleteEmployee(id int64) error
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, db *sql.DB) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo, db: db}
}

// RegisterEmployee validates the request, derives the next role-prefixed
// staff ID and stores the account with a hashed password.
func (s *employeeService) RegisterEmployee(req RegisterEmployeeRequest) (*models.Employee, error) {
	if utils.IsEmpty(req.FullName) {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if !utils.IsValidPhone(req.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	prefix, ok := RolePrefix(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	employee, err := s.registerInTx(tx, req, prefix, string(hash))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit employee registration: %w", err)
	}
	return employee, nil
}

// registerInTx allocates the next role-prefixed staff ID and inserts the
// account against the same executor, so the read and the insert share one
// transaction. A concurrent registration that slips in between is surfaced
// as ErrEmployeeIDTaken rather than silently reusing the number.
func (s *employeeService) registerInTx(executor repositories.SQLExecutor, req RegisterEmployeeRequest, prefix, passwordHash string) (*models.Employee, error) {
	maxNumber, err := s.employeeRepo.MaxIDNumberForPrefix(executor, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to derive next staff ID: %w", err)
	}

	now := time.Now()
	employee := &models.Employee{
		FullName:       req.FullName,
		EmployeeID:     FormatEmployeeID(prefix, maxNumber+1),
		Role:           req.Role,
		Phone:          req.Phone,
		PasswordHash:   passwordHash,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		CurrentAddress: req.CurrentAddress,
		RegisteredAt:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := s.employeeRepo.CreateEmployee(executor, employee)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmployeeID):
			return nil, ErrEmployeeIDTaken
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrPhoneAlreadyUsed
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	employee.ID = id
	return employee, nil
}

func (s *employeeService) GetEmployeeByID(id int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee %d: %w", id, err)
	}
	return employee, nil
}

func (s *employeeService) GetEmployees(page, pageSize int, searchTerm *string) ([]models.Employee, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	employees, total, err := s.employeeRepo.GetEmployees(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// UpdateEmployee applies a partial update. The role, and with it the staff
// ID, is fixed at registration.
func (s *employeeService) UpdateEmployee(id int64, req UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if utils.IsEmpty(*req.FullName) {
			return nil, fmt.Errorf("%w: full name cannot be empty", ErrValidation)
		}
		employee.FullName = *req.FullName
	}
	if req.Phone != nil {
		if !utils.IsValidPhone(*req.Phone) {
			return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
		}
		employee.Phone = *req.Phone
	}
	if req.Password != nil {
		if !utils.IsValidPasswordLength(*req.Password, minPasswordLength) {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		employee.PasswordHash = string(hash)
	}
	if req.DateOfBirth != nil {
		employee.DateOfBirth = req.DateOfBirth
	}
	if req.Address != nil {
		employee.Address = req.Address
	}
	if req.CurrentAddress != nil {
		employee.CurrentAddress = req.CurrentAddress
	}
	employee.UpdatedAt = time.Now()

	if err := s.employeeRepo.UpdateEmployee(s.db, employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneAlreadyUsed
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee %d: %w", id, err)
	}
	return employee, nil
}

// DeleteEmployee removes a staff account. The last remaining account is
// protected so the system cannot be locked out.
func (s *employeeService) DeleteEmployee(id int64) error {
	count, err := s.employeeRepo.CountEmployees()
	if err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}
	if count <= 1 {
		return ErrLastOwnerProtection
	}

	if err := s.employeeRepo.DeleteEmployee(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	return nil
}
