package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations.
// now is always supplied by the caller.
type AttendanceService interface {
	// CheckIn creates today's record for the employee
	CheckIn(ctx context.Context, employeeID string, now time.Time) (AttendanceResponse, error)

	// CheckOut closes today's record and computes worked hours
	CheckOut(ctx context.Context, employeeID string, now time.Time) (AttendanceResponse, error)

	// TodayStatus reports whether the employee checked in/out today
	TodayStatus(ctx context.Context, employeeID string, now time.Time) (TodayStatusResponse, error)

	// History lists the employee's records for a month, newest first
	History(ctx context.Context, employeeID string, filter MonthFilter, now time.Time) ([]AttendanceResponse, error)

	// MySummary summarizes the employee's month
	MySummary(ctx context.Context, employeeID string, filter MonthFilter, now time.Time) (SummaryResponse, error)

	// Summarize aggregates any scope over an inclusive date range (manager)
	Summarize(ctx context.Context, req SummaryRequest, now time.Time) (SummaryResponse, error)

	// TeamSummary returns per-employee month summaries plus the total (manager)
	TeamSummary(ctx context.Context, filter MonthFilter, now time.Time) (TeamSummaryResponse, error)

	// List retrieves attendance records with filters (manager)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
