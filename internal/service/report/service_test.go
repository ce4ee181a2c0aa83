package report

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func seededStore() *memory.Store {
	store := memory.NewStore()
	store.AddEmployee(employee.Employee{ID: "id-b", EmployeeCode: "EMP002", FullName: "Budi", Department: "Sales", Role: employee.RoleEmployee})
	store.AddEmployee(employee.Employee{ID: "id-a", EmployeeCode: "EMP001", FullName: "Ana", Department: "Engineering", Role: employee.RoleEmployee})
	store.AddEmployee(employee.Employee{ID: "id-m", EmployeeCode: "MGR001", FullName: "Maya", Department: "Engineering", Role: employee.RoleManager})

	add := func(id, employeeID string, day int, status attendance.Status, in, out string) {
		date := time.Date(2024, 3, day, 0, 0, 0, 0, wib)
		a := attendance.Attendance{ID: id, EmployeeID: employeeID, Date: date, Status: status}
		if in != "" {
			t, _ := time.ParseInLocation("2006-01-02 15:04", calendar.DateKey(date)+" "+in, wib)
			a.CheckInAt = &t
		}
		if out != "" {
			t, _ := time.ParseInLocation("2006-01-02 15:04", calendar.DateKey(date)+" "+out, wib)
			a.CheckOutAt = &t
			hours, _ := attendance.ComputeHours(*a.CheckInAt, t)
			a.TotalHours = &hours
		}
		store.AddAttendance(a)
	}
	add("r1", "id-b", 4, attendance.StatusLate, "09:10", "17:20")
	add("r2", "id-a", 4, attendance.StatusPresent, "08:55", "17:00")
	add("r3", "id-a", 5, attendance.StatusHalfDay, "08:00", "12:20")
	add("r4", "id-b", 5, attendance.StatusPresent, "08:30", "")
	add("r5", "id-a", 6, attendance.StatusPresent, "08:00", "16:00")
	add("r6", "id-m", 4, attendance.StatusPresent, "08:40", "17:00")
	return store
}

func TestExportRows(t *testing.T) {
	store := seededStore()
	svc := NewReportService(store.Attendances(), store.Employees(), wib)

	rows, err := svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-04", EndDate: "2024-03-05"})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"2024-03-04", "EMP001", "Ana", "Engineering", "08:55:00", "17:00:00", "present", "8.08"}, rows[0].Values())
	assert.Equal(t, []string{"2024-03-04", "EMP002", "Budi", "Sales", "09:10:00", "17:20:00", "late", "8.17"}, rows[1].Values())
	assert.Equal(t, "EMP001", rows[2].EmployeeCode)
	assert.Equal(t, []string{"2024-03-05", "EMP002", "Budi", "Sales", "08:30:00", "", "present", ""}, rows[3].Values())
	assert.Equal(t, "id-b", rows[3].EmployeeID)
	for _, r := range rows {
		assert.NotEqual(t, "MGR001", r.EmployeeCode)
	}
}

func TestExportRows_Department(t *testing.T) {
	store := seededStore()
	svc := NewReportService(store.Attendances(), store.Employees(), wib)

	dept := "Sales"
	rows, err := svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-01", EndDate: "2024-03-31", Department: &dept})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "EMP002", r.EmployeeCode)
	}

	empty := "Finance"
	rows, err = svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-01", EndDate: "2024-03-31", Department: &empty})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportRows_ManagerByCode(t *testing.T) {
	store := seededStore()
	svc := NewReportService(store.Attendances(), store.Employees(), wib)

	code := "MGR001"
	rows, err := svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-01", EndDate: "2024-03-31", EmployeeCode: &code})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maya", rows[0].Name)
}

func TestExportRows_SingleEmployee(t *testing.T) {
	store := seededStore()
	svc := NewReportService(store.Attendances(), store.Employees(), wib)

	code := "EMP001"
	rows, err := svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-01", EndDate: "2024-03-31", EmployeeCode: &code})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, "EMP001", r.EmployeeCode)
	}

	missing := "EMP404"
	_, err = svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-01", EndDate: "2024-03-31", EmployeeCode: &missing})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExportRows_InvalidRequest(t *testing.T) {
	store := seededStore()
	svc := NewReportService(store.Attendances(), store.Employees(), wib)

	_, err := svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-05", EndDate: "2024-03-04"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "end_date", verrs[0].Field)

	_, err = svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "2024-03-01", EndDate: "2024-03-02", Format: "pdf"})
	assert.Error(t, err)

	_, err = svc.ExportRows(context.Background(), report.ExportRequest{StartDate: "0001-01-01", EndDate: "9999-12-31"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, report.ErrDateRangeTooLong.Error(), verrs[0].Message)
}

// Re-aggregating exported rows gives the counts and hours of a summary over
// the same scope.
func TestExportRows_MatchesSummary(t *testing.T) {
	tests := []struct {
		name       string
		code       *string
		department *string
	}{
		{name: "organisation"},
		{name: "department", department: strPtr("Engineering")},
		{name: "employee", code: strPtr("EMP002")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore()
			svc := NewReportService(store.Attendances(), store.Employees(), wib)
			policy := attendance.Policy{Cutoff: attendance.DefaultCutoff, Location: wib, WorkingDays: calendar.EveryDay()}
			summaries := attendanceService.NewAttendanceService(store.Attendances(), store.Employees(), policy, nil)
			now := time.Date(2024, 4, 1, 9, 0, 0, 0, wib)

			rows, err := svc.ExportRows(context.Background(), report.ExportRequest{
				StartDate: "2024-03-01", EndDate: "2024-03-31", EmployeeCode: tt.code, Department: tt.department,
			})
			require.NoError(t, err)

			want, err := summaries.Summarize(context.Background(), attendance.SummaryRequest{
				StartDate: "2024-03-01", EndDate: "2024-03-31", EmployeeCode: tt.code, Department: tt.department,
			}, now)
			require.NoError(t, err)

			var got attendance.Summary
			employees := map[string]struct{}{}
			for _, r := range rows {
				employees[r.EmployeeID] = struct{}{}
				switch attendance.Status(r.Status) {
				case attendance.StatusPresent:
					got.Present++
				case attendance.StatusLate:
					got.Late++
				case attendance.StatusHalfDay:
					got.HalfDay++
				}
				if r.TotalHours != nil {
					got.TotalHours += *r.TotalHours
				}
			}
			got.Absent = want.EmployeeCount*31 - len(rows)

			assert.Equal(t, want.Summary.Present, got.Present)
			assert.Equal(t, want.Summary.Late, got.Late)
			assert.Equal(t, want.Summary.HalfDay, got.HalfDay)
			assert.Equal(t, want.Summary.Absent, got.Absent)
			assert.InDelta(t, want.Summary.TotalHours, got.TotalHours, 0.005)
			assert.LessOrEqual(t, len(employees), want.EmployeeCount)

			var displayed float64
			for _, r := range rows {
				if cell := r.Values()[7]; cell != "" {
					h, err := strconv.ParseFloat(cell, 64)
					require.NoError(t, err)
					displayed += h
				}
			}
			assert.InDelta(t, want.Summary.TotalHours, displayed, 0.005*float64(len(rows)+1))
		})
	}
}

func strPtr(s string) *string {
	return &s
}
