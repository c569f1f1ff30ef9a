package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
)

var (
	ErrAlreadyClockedIn = errors.New("employee already clocked in today")
	ErrNotClockedIn     = errors.New("employee has not clocked in today")
	ErrAttendanceDone   = errors.New("attendance for today is already completed")
)

const (
	attendanceDateLayout = "2006-01-02"
	attendanceTimeLayout = "15:04"
)

// AttendanceStatusResponse reports one employee's state for today.
type AttendanceStatusResponse struct {
	EmployeeID string                  `json:"employee_id"`
	Date       string                  `json:"date"`
	Status     models.AttendanceStatus `json:"status"`
	TimeIn     string                  `json:"time,omitempty"`
	TimeOut    string                  `json:"time_out,omitempty"`
}

type AttendanceService interface {
	ClockIn(employeeID string) (*models.AttendanceEntry, error)
	ClockOut(employeeID string) (*models.AttendanceEntry, error)
	GetStatus(employeeID string) (*AttendanceStatusResponse, error)
	GetEntries(date *string, page, pageSize int) ([]models.AttendanceEntry, int, error)
	CloseOpenEntries() (int64, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	employeeRepo   repositories.EmployeeRepository
	db             *sql.DB
	now            func() time.Time
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	employeeRepo repositories.EmployeeRepository,
	db *sql.DB,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		db:             db,
		now:            time.Now,
	}
}

// ClockIn opens today's attendance entry for the employee. A second clock-in
// on the same day is rejected whether the entry is still open or already
// closed.
func (s *attendanceService) ClockIn(employeeID string) (*models.AttendanceEntry, error) {
	employee, err := s.employeeRepo.GetEmployeeByEmployeeID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to fetch employee %s: %w", employeeID, err)
	}

	now := s.now()
	entry := &models.AttendanceEntry{
		EmployeeID: employee.EmployeeID,
		Name:       employee.FullName,
		Date:       now.Format(attendanceDateLayout),
		TimeIn:     now.Format(attendanceTimeLayout),
	}

	id, err := s.attendanceRepo.CreateEntry(s.db, entry)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("failed to record clock-in for %s: %w", employeeID, err)
	}
	entry.ID = id
	entry.Status = models.AttendanceIn
	return entry, nil
}

// ClockOut closes today's open entry. Clocking out without an open entry is
// rejected; clocking out twice is rejected.
func (s *attendanceService) ClockOut(employeeID string) (*models.AttendanceEntry, error) {
	now := s.now()
	today := now.Format(attendanceDateLayout)

	entry, err := s.attendanceRepo.GetEntryForDay(employeeID, today)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to fetch attendance for %s: %w", employeeID, err)
	}
	if entry.StatusOf() == models.AttendanceDone {
		return nil, ErrAttendanceDone
	}

	timeOut := now.Format(attendanceTimeLayout)
	if err := s.attendanceRepo.SetTimeOut(s.db, entry.ID, timeOut); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Lost the race with another clock-out for the same entry.
			return nil, ErrAttendanceDone
		}
		return nil, fmt.Errorf("failed to record clock-out for %s: %w", employeeID, err)
	}
	entry.TimeOut = &timeOut
	entry.Status = models.AttendanceDone
	return entry, nil
}

// GetStatus reports the employee's attendance state for today.
func (s *attendanceService) GetStatus(employeeID string) (*AttendanceStatusResponse, error) {
	today := s.now().Format(attendanceDateLayout)

	entry, err := s.attendanceRepo.GetEntryForDay(employeeID, today)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &AttendanceStatusResponse{
				EmployeeID: employeeID,
				Date:       today,
				Status:     models.AttendanceOut,
			}, nil
		}
		return nil, fmt.Errorf("failed to fetch attendance status for %s: %w", employeeID, err)
	}

	resp := &AttendanceStatusResponse{
		EmployeeID: employeeID,
		Date:       today,
		Status:     entry.StatusOf(),
		TimeIn:     entry.TimeIn,
	}
	if entry.TimeOut != nil {
		resp.TimeOut = *entry.TimeOut
	}
	return resp, nil
}

func (s *attendanceService) GetEntries(date *string, page, pageSize int) ([]models.AttendanceEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	entries, total, err := s.attendanceRepo.GetEntries(date, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	for i := range entries {
		entries[i].Status = entries[i].StatusOf()
	}
	return entries, total, nil
}

// CloseOpenEntries stamps a time-out on every entry still open today. Run by
// the nightly scheduler so forgotten clock-outs do not linger.
func (s *attendanceService) CloseOpenEntries() (int64, error) {
	now := s.now()
	closed, err := s.attendanceRepo.CloseOpenEntriesForDay(
		s.db, now.Format(attendanceDateLayout), now.Format(attendanceTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to close open attendance entries: %w", err)
	}
	return closed, nil
}
