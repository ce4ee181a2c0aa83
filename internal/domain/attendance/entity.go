package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	// StatusAbsent is derived by aggregation and never stored.
	StatusAbsent Status = "absent"
)

// IsStored reports whether s may appear on a persisted record.
func (s Status) IsStored() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// Attendance is the single record for one employee on one calendar day.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // civil date, location irrelevant
	CheckInAt  *time.Time
	CheckOutAt *time.Time
	Status     Status
	TotalHours *float64 // nil until checked out
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeCode *string
	EmployeeName *string
	Department   *string
}

func (a *Attendance) HasCheckedIn() bool {
	return a.CheckInAt != nil
}

func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOutAt != nil
}

// DateKey is the YYYY-MM-DD form of the record's day.
func (a *Attendance) DateKey() string {
	return a.Date.Format("2006-01-02")
}
