package report

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ExportRequest selects rows by inclusive date range. The scope matches a
// summary: one employee by code, otherwise the roster of role employee,
// optionally narrowed to a department.
type ExportRequest struct {
	StartDate    string  `json:"start_date" validate:"required,date"`
	EndDate      string  `json:"end_date" validate:"required,date"`
	EmployeeCode *string `json:"employee_code,omitempty" validate:"omitempty,employee_code"`
	Department   *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Format       Format  `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

func (r *ExportRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	if end.Before(start) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		}}
	}
	if calendar.SpanDays(start, end) > calendar.MaxRangeDays {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrDateRangeTooLong.Error(),
		}}
	}
	if r.Format == "" {
		r.Format = FormatCSV
	}
	return nil
}

// Filename is attendance_<start>_<end>.<format>.
func (r ExportRequest) Filename() string {
	return fmt.Sprintf("attendance_%s_%s.%s", r.StartDate, r.EndDate, r.Format)
}

// Header is the column order of ExportRow.Values.
var Header = []string{"Date", "Employee ID", "Name", "Department", "Check In", "Check Out", "Status", "Total Hours"}

// ExportRow is one attendance record joined with its employee. Times are
// HH:MM:SS in the reference timezone, empty when absent.
type ExportRow struct {
	Date         string
	EmployeeID   string
	EmployeeCode string
	Name         string
	Department   string
	CheckIn      string
	CheckOut     string
	Status       string
	TotalHours   *float64
}

// Values returns the cells in Header order. Hours carry two decimals.
func (r ExportRow) Values() []string {
	hours := ""
	if r.TotalHours != nil {
		hours = strconv.FormatFloat(*r.TotalHours, 'f', 2, 64)
	}
	return []string{r.Date, r.EmployeeCode, r.Name, r.Department, r.CheckIn, r.CheckOut, r.Status, hours}
}

// Cells is Values for typed sheets: Total Hours is a float64 rounded to two
// decimals, or empty while the record is open.
func (r ExportRow) Cells() []interface{} {
	values := r.Values()
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if r.TotalHours != nil {
		cells[len(cells)-1] = attendance.RoundHours(*r.TotalHours)
	}
	return cells
}
