package models

// AttendanceStatus is the explicit per-day state of an employee's attendance.
// Transitions: Out -> In (clock-in), In -> Done (clock-out). Done is terminal
// for that date.
type AttendanceStatus string

const (
	AttendanceOut  AttendanceStatus = "out"
	AttendanceIn   AttendanceStatus = "in"
	AttendanceDone AttendanceStatus = "done"
)

// AttendanceEntry records one employee's attendance for one calendar day.
// At most one entry exists per (EmployeeID, Date); the database enforces it.
type AttendanceEntry struct {
	ID         int64            `json:"id"`
	EmployeeID string           `json:"employee_id" db:"employee_id"`
	Name       string           `json:"name" db:"name"`
	Date       string           `json:"date" db:"day"` // YYYY-MM-DD
	TimeIn     string           `json:"time" db:"time_in"`
	TimeOut    *string          `json:"time_out,omitempty" db:"time_out"`
	Status     AttendanceStatus `json:"status"`
}

// StatusOf derives the tagged state once; callers carry the value instead of
// re-checking TimeOut at every site.
func (e *AttendanceEntry) StatusOf() AttendanceStatus {
	if e == nil {
		return AttendanceOut
	}
	if e.TimeOut != nil && *e.TimeOut != "" {
		return AttendanceDone
	}
	return AttendanceIn
}
