package services

import (
	"database/sql"
	"errors"
	"testing"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
)

// stubExecutor stands in for the *sql.Tx threaded through a registration.
type stubExecutor struct{ name string }

func (stubExecutor) Exec(string, ...interface{}) (sql.Result, error) { return nil, nil }
func (stubExecutor) QueryRow(string, ...interface{}) *sql.Row        { return nil }
func (stubExecutor) Query(string, ...interface{}) (*sql.Rows, error) { return nil, nil }

func TestRegisterEmployeeAllocatesIDOnSameExecutor(t *testing.T) {
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*models.Employee{}, maxNumber: 4}
	svc := &employeeService{employeeRepo: employeeRepo}
	executor := stubExecutor{name: "tx"}

	employee, err := svc.registerInTx(executor, RegisterEmployeeRequest{
		FullName: "Rina",
		Role:     models.RoleKasir,
		Phone:    "081234567890",
	}, "KSR", "hash")
	if err != nil {
		t.Fatalf("registerInTx: %v", err)
	}
	if employee.EmployeeID != "KSR-005" {
		t.Errorf("EmployeeID = %q, want KSR-005", employee.EmployeeID)
	}
	// The ID read and the insert must run against the same transaction.
	if employeeRepo.maxIDExecutor != executor {
		t.Errorf("MaxIDNumberForPrefix ran on %v, want the registration executor", employeeRepo.maxIDExecutor)
	}
	if employeeRepo.createExecutor != executor {
		t.Errorf("CreateEmployee ran on %v, want the registration executor", employeeRepo.createExecutor)
	}
}

func TestRegisterEmployeeDuplicateErrors(t *testing.T) {
	req := RegisterEmployeeRequest{FullName: "Rina", Role: models.RoleKasir, Phone: "081234567890"}

	employeeRepo := &fakeEmployeeRepo{employees: map[string]*models.Employee{}}
	svc := &employeeService{employeeRepo: employeeRepo}

	employeeRepo.createErr = repositories.ErrDuplicateEmployeeID
	if _, err := svc.registerInTx(stubExecutor{}, req, "KSR", "hash"); !errors.Is(err, ErrEmployeeIDTaken) {
		t.Errorf("staff ID collision error = %v, want ErrEmployeeIDTaken", err)
	}

	employeeRepo.createErr = repositories.ErrDuplicateKey
	if _, err := svc.registerInTx(stubExecutor{}, req, "KSR", "hash"); !errors.Is(err, ErrPhoneAlreadyUsed) {
		t.Errorf("taken phone error = %v, want ErrPhoneAlreadyUsed", err)
	}
}
