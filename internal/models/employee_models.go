package models

import "time"

// Employee roles. Role gates page access; the prefix of the generated
// employee ID is derived from it.
const (
	RoleOwner      = "owner"
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
	RoleKasir      = "kasir"
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
)

// Employee represents a registered staff account.
type Employee struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"fullname" db:"full_name"`
	EmployeeID     string    `json:"employee_id" db:"employee_id"` // role-prefixed, e.g. KSR-001
	Role           string    `json:"role" db:"role"`
	Phone          string    `json:"phone" db:"phone"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	DateOfBirth    *string   `json:"date_of_birth,omitempty" db:"date_of_birth"` // YYYY-MM-DD
	Address        *string   `json:"address,omitempty" db:"address"`
	CurrentAddress *string   `json:"current_address,omitempty" db:"current_address"`
	RegisteredAt   time.Time `json:"registered_at" db:"registered_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Credentials for login request. Employees sign in with their phone number.
type Credentials struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}
