package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoActiveCheckIn   = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrInvalidTimeRange  = errors.New("check-out must be after check-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrStoreUnavailable   = errors.New("attendance store unavailable")
	ErrInvalidStatus      = errors.New("status must be present, late or half-day")
)
