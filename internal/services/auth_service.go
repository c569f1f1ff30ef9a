package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// TokenPair is the access/refresh pair issued at login.
type TokenPair struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Employee     *models.Employee `json:"employee"`
}

type AuthService interface {
	Login(creds models.Credentials) (*TokenPair, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	CurrentEmployee(userID int64) (*models.Employee, error)
}

type authService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(employeeRepo repositories.EmployeeRepository) AuthService {
	return &authService{employeeRepo: employeeRepo}
}

// Login authenticates an employee by phone and password and issues tokens.
func (s *authService) Login(creds models.Credentials) (*TokenPair, error) {
	employee, err := s.employeeRepo.GetEmployeeByPhone(creds.Phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch employee by phone: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(creds.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(employee)
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	employee, err := s.employeeRepo.GetEmployeeByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to fetch employee for refresh: %w", err)
	}

	return s.issueTokens(employee)
}

// CurrentEmployee resolves the account behind an authenticated request.
func (s *authService) CurrentEmployee(userID int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to fetch current employee: %w", err)
	}
	return employee, nil
}

func (s *authService) issueTokens(employee *models.Employee) (*TokenPair, error) {
	access, err := utils.GenerateAccessToken(employee.ID, employee.EmployeeID, employee.FullName, employee.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, Employee: employee}, nil
}
