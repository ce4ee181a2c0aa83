package dashboard

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

// RecentDays is the window of the employee view, today included.
const RecentDays = 8

// RecentLimit caps the employee's recent attendance list.
const RecentLimit = 7

// TrendDays is the length of the manager's weekly trend.
const TrendDays = 7

// ========== EMPLOYEE VIEW ==========

type EmployeeDashboard struct {
	TodayStatus      attendance.TodayStatusResponse  `json:"today_status"`
	MonthSummary     attendance.Summary              `json:"month_summary"`
	RecentAttendance []attendance.AttendanceResponse `json:"recent_attendance"`
}

// ========== MANAGER VIEW ==========

type TodayAttendance struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

type ManagerDashboard struct {
	TotalEmployees       int                         `json:"total_employees"`
	TodayAttendance      TodayAttendance             `json:"today_attendance"`
	AbsentEmployeesToday []employee.EmployeeResponse `json:"absent_employees_today"`
	WeeklyTrend          []attendance.TrendPoint     `json:"weekly_trend"`
	DepartmentWise       []attendance.DepartmentStat `json:"department_wise"`
}

// ========== COMBINED ==========

// DashboardResponse carries exactly one of the two views.
type DashboardResponse struct {
	Role     employee.Role      `json:"role"`
	Employee *EmployeeDashboard `json:"employee,omitempty"`
	Manager  *ManagerDashboard  `json:"manager,omitempty"`
}
