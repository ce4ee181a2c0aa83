package attendance

import (
	"context"
	"time"
)

// CheckOutPatch is the only mutation a record ever receives.
type CheckOutPatch struct {
	CheckOutAt time.Time
	TotalHours float64
}

// AttendanceRepository defines data access methods for attendance records.
// Every method wraps driver failures with ErrStoreUnavailable.
type AttendanceRepository interface {
	// FindOne returns nil, nil when the employee has no record on day.
	FindOne(ctx context.Context, employeeID string, day time.Time) (*Attendance, error)

	// FindRange returns records whose day lies in [start, end], ordered by
	// date then employee code. A nil employeeIDs selects every employee.
	FindRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]Attendance, error)

	// CreateIfAbsent inserts a unless a record for (employee, day) exists,
	// in which case it returns ErrAlreadyCheckedIn.
	CreateIfAbsent(ctx context.Context, a Attendance) (Attendance, error)

	// Update applies the check-out patch to a record that has not been
	// checked out yet, otherwise it returns ErrAlreadyCheckedOut.
	Update(ctx context.Context, id string, patch CheckOutPatch) (Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
