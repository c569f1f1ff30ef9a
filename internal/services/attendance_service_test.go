package services

import (
	"errors"
	"testing"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
)

type fakeEmployeeRepo struct {
	employees map[string]*models.Employee // keyed by staff ID

	maxNumber      int
	createErr      error
	created        *models.Employee
	maxIDExecutor  repositories.SQLExecutor
	createExecutor repositories.SQLExecutor
}

func (f *fakeEmployeeRepo) CreateEmployee(executor repositories.SQLExecutor, employee *models.Employee) (int64, error) {
	f.createExecutor = executor
	if f.createErr != nil {
		return 0, f.createErr
	}
	stored := *employee
	stored.ID = int64(len(f.employees) + 1)
	f.created = &stored
	return stored.ID, nil
}
func (f *fakeEmployeeRepo) GetEmployeeByID(_ int64) (*models.Employee, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeEmployeeRepo) GetEmployeeByPhone(_ string) (*models.Employee, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeEmployeeRepo) GetEmployeeByEmployeeID(employeeID string) (*models.Employee, error) {
	if e, ok := f.employees[employeeID]; ok {
		return e, nil
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeEmployeeRepo) GetEmployees(_, _ int, _ *string) ([]models.Employee, int, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) MaxIDNumberForPrefix(executor repositories.SQLExecutor, _ string) (int, error) {
	f.maxIDExecutor = executor
	return f.maxNumber, nil
}
func (f *fakeEmployeeRepo) UpdateEmployee(_ repositories.SQLExecutor, _ *models.Employee) error {
	return errors.New("not implemented")
}
func (f *fakeEmployeeRepo) DeleteEmployee(_ repositories.SQLExecutor, _ int64) error {
	return errors.New("not implemented")
}
func (f *fakeEmployeeRepo) CountEmployees() (int, error) { return len(f.employees), nil }

type fakeAttendanceRepo struct {
	entries []*models.AttendanceEntry
	nextID  int64
}

func (f *fakeAttendanceRepo) GetEntryForDay(employeeID, date string) (*models.AttendanceEntry, error) {
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date == date {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAttendanceRepo) CreateEntry(_ repositories.SQLExecutor, entry *models.AttendanceEntry) (int64, error) {
	for _, e := range f.entries {
		if e.EmployeeID == entry.EmployeeID && e.Date == entry.Date {
			return 0, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	stored := *entry
	stored.ID = f.nextID
	f.entries = append(f.entries, &stored)
	return f.nextID, nil
}

func (f *fakeAttendanceRepo) SetTimeOut(_ repositories.SQLExecutor, id int64, timeOut string) error {
	for _, e := range f.entries {
		if e.ID == id {
			if e.TimeOut != nil {
				return repositories.ErrNotFound
			}
			e.TimeOut = &timeOut
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeAttendanceRepo) GetEntries(date *string, _, _ int) ([]models.AttendanceEntry, int, error) {
	out := []models.AttendanceEntry{}
	for _, e := range f.entries {
		if date == nil || e.Date == *date {
			out = append(out, *e)
		}
	}
	return out, len(out), nil
}

func (f *fakeAttendanceRepo) CloseOpenEntriesForDay(_ repositories.SQLExecutor, date, timeOut string) (int64, error) {
	var closed int64
	for _, e := range f.entries {
		if e.Date == date && e.TimeOut == nil {
			out := timeOut
			e.TimeOut = &out
			closed++
		}
	}
	return closed, nil
}

func newAttendanceFixture(now time.Time) (*attendanceService, *fakeAttendanceRepo) {
	attendanceRepo := &fakeAttendanceRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*models.Employee{
		"KSR-001": {ID: 1, EmployeeID: "KSR-001", FullName: "Rina", Role: models.RoleKasir},
	}}
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            func() time.Time { return now },
	}, attendanceRepo
}

func TestAttendanceClockInOutCycle(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 15, 0, 0, time.Local)
	svc, _ := newAttendanceFixture(now)

	status, err := svc.GetStatus("KSR-001")
	if err != nil {
		t.Fatalf("GetStatus before clock-in: %v", err)
	}
	if status.Status != models.AttendanceOut {
		t.Fatalf("status before clock-in = %s, want out", status.Status)
	}

	entry, err := svc.ClockIn("KSR-001")
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if entry.TimeIn != "09:15" {
		t.Errorf("TimeIn = %q, want 09:15", entry.TimeIn)
	}
	if entry.Status != models.AttendanceIn {
		t.Errorf("status after clock-in = %s, want in", entry.Status)
	}

	if _, err := svc.ClockIn("KSR-001"); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Errorf("second clock-in error = %v, want ErrAlreadyClockedIn", err)
	}

	entry, err = svc.ClockOut("KSR-001")
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	if entry.Status != models.AttendanceDone {
		t.Errorf("status after clock-out = %s, want done", entry.Status)
	}

	if _, err := svc.ClockOut("KSR-001"); !errors.Is(err, ErrAttendanceDone) {
		t.Errorf("second clock-out error = %v, want ErrAttendanceDone", err)
	}

	if _, err := svc.ClockIn("KSR-001"); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Errorf("clock-in after done error = %v, want ErrAlreadyClockedIn", err)
	}
}

func TestAttendanceClockOutWithoutClockIn(t *testing.T) {
	now := time.Date(2026, time.August, 31, 17, 0, 0, 0, time.Local)
	svc, _ := newAttendanceFixture(now)

	if _, err := svc.ClockOut("KSR-001"); !errors.Is(err, ErrNotClockedIn) {
		t.Errorf("ClockOut error = %v, want ErrNotClockedIn", err)
	}
}

func TestAttendanceClockInUnknownEmployee(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.Local)
	svc, _ := newAttendanceFixture(now)

	if _, err := svc.ClockIn("KSR-999"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("ClockIn error = %v, want ErrEmployeeNotFound", err)
	}
}

func TestAttendanceCloseOpenEntries(t *testing.T) {
	now := time.Date(2026, time.August, 31, 23, 55, 0, 0, time.Local)
	svc, repo := newAttendanceFixture(now)

	if _, err := svc.ClockIn("KSR-001"); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}

	closed, err := svc.CloseOpenEntries()
	if err != nil {
		t.Fatalf("CloseOpenEntries: %v", err)
	}
	if closed != 1 {
		t.Errorf("closed = %d, want 1", closed)
	}
	if repo.entries[0].TimeOut == nil || *repo.entries[0].TimeOut != "23:55" {
		t.Errorf("entry not stamped with close time")
	}

	status, err := svc.GetStatus("KSR-001")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Status != models.AttendanceDone {
		t.Errorf("status after auto-close = %s, want done", status.Status)
	}
}
