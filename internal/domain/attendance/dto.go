package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeCode *string  `json:"employee_code,omitempty"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Department   *string  `json:"department,omitempty"`
	Date         string   `json:"date"`
	CheckInAt    *string  `json:"check_in_at,omitempty"`
	CheckOutAt   *string  `json:"check_out_at,omitempty"`
	Status       Status   `json:"status"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// ToResponse renders timestamps in loc and rounds hours for display.
func ToResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeCode: a.EmployeeCode,
		EmployeeName: a.EmployeeName,
		Department:   a.Department,
		Date:         a.DateKey(),
		Status:       a.Status,
		CreatedAt:    a.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.In(loc).Format(time.RFC3339),
	}
	if a.CheckInAt != nil {
		s := a.CheckInAt.In(loc).Format(time.RFC3339)
		resp.CheckInAt = &s
	}
	if a.CheckOutAt != nil {
		s := a.CheckOutAt.In(loc).Format(time.RFC3339)
		resp.CheckOutAt = &s
	}
	if a.TotalHours != nil {
		h := RoundHours(*a.TotalHours)
		resp.TotalHours = &h
	}
	return resp
}

func ToResponses(records []Attendance, loc *time.Location) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToResponse(r, loc))
	}
	return out
}

type TodayStatusResponse struct {
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

// MonthFilter selects a calendar month. Zero values mean the current month.
type MonthFilter struct {
	Month int `json:"month" validate:"omitempty,min=1,max=12"`
	Year  int `json:"year" validate:"omitempty,min=2000,max=2100"`
}

func (f *MonthFilter) Validate() error {
	return validator.Struct(f)
}

// Range resolves the filter against today in loc.
func (f MonthFilter) Range(now time.Time, loc *time.Location) calendar.Range {
	local := now.In(loc)
	year, month := f.Year, time.Month(f.Month)
	if year == 0 {
		year = local.Year()
	}
	if month == 0 {
		month = local.Month()
	}
	return calendar.MonthBounds(year, month, loc)
}

// SummaryRequest scopes an aggregation. Without employee_code or department
// the scope is every employee with role employee.
type SummaryRequest struct {
	StartDate    string  `json:"start_date" validate:"required,date"`
	EndDate      string  `json:"end_date" validate:"required,date"`
	EmployeeCode *string `json:"employee_code,omitempty" validate:"omitempty,employee_code"`
	Department   *string `json:"department,omitempty" validate:"omitempty,max=100"`
}

func (r *SummaryRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	if end.Before(start) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	if calendar.SpanDays(start, end) > calendar.MaxRangeDays {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: fmt.Sprintf("date range must not exceed %d days", calendar.MaxRangeDays),
		}}
	}
	return nil
}

type SummaryResponse struct {
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	EmployeeCount int     `json:"employee_count"`
	Summary       Summary `json:"summary"`
}

type EmployeeSummary struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department"`
	Summary      Summary `json:"summary"`
}

type TeamSummaryResponse struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Total     Summary           `json:"total"`
	Employees []EmployeeSummary `json:"employees"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeCode *string `json:"employee_code,omitempty"`
	Department   *string `json:"department,omitempty"`
	Date         *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Month        *int    `json:"month,omitempty"`
	Year         *int    `json:"year,omitempty"`
	Status       *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_code, employee_name, check_in_at, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusPresent), string(StatusLate), string(StatusHalfDay)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, half-day",
			})
		}
	}

	if f.EmployeeCode != nil && !validator.IsValidEmployeeCode(*f.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must look like EMP001",
		})
	}

	for field, value := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if value == nil || *value == "" {
			continue
		}
		if _, valid := validator.IsValidDate(*value); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Month != nil && f.Year == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required when month is set",
		})
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_code", "employee_name", "check_in_at", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_code, employee_name, check_in_at, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
