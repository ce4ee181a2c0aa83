package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	attendanceRepo    attendance.AttendanceRepository
	employeeRepo      employee.EmployeeRepository
	location          *time.Location
}

func NewDashboardService(
	attendanceService attendance.AttendanceService,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	location *time.Location,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceService: attendanceService,
		attendanceRepo:    attendanceRepo,
		employeeRepo:      employeeRepo,
		location:          location,
	}
}

// Dashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Dashboard(ctx context.Context, role employee.Role, employeeID string, now time.Time) (*dashboard.DashboardResponse, error) {
	switch role {
	case employee.RoleManager:
		view, err := s.ManagerDashboard(ctx, now)
		if err != nil {
			return nil, err
		}
		return &dashboard.DashboardResponse{Role: role, Manager: view}, nil
	case employee.RoleEmployee:
		view, err := s.EmployeeDashboard(ctx, employeeID, now)
		if err != nil {
			return nil, err
		}
		return &dashboard.DashboardResponse{Role: role, Employee: view}, nil
	default:
		return nil, employee.ErrInvalidRole
	}
}

// EmployeeDashboard returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) EmployeeDashboard(ctx context.Context, employeeID string, now time.Time) (*dashboard.EmployeeDashboard, error) {
	var (
		today   attendance.TodayStatusResponse
		month   attendance.SummaryResponse
		records []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Today's record
	g.Go(func() error {
		var err error
		today, err = s.attendanceService.TodayStatus(gCtx, employeeID, now)
		return err
	})

	// 2. Current month summary
	g.Go(func() error {
		var err error
		month, err = s.attendanceService.MySummary(gCtx, employeeID, attendance.MonthFilter{}, now)
		return err
	})

	// 3. Recent window
	g.Go(func() error {
		window := calendar.LastNDays(dashboard.RecentDays, now.In(s.location))
		var err error
		records, err = s.attendanceRepo.FindRange(gCtx, []string{employeeID}, window.Start, window.End)
		if err != nil {
			return fmt.Errorf("failed to get recent attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return composeEmployee(today, month.Summary, records, s.location), nil
}

// ManagerDashboard returns organization-wide figures using parallel goroutines
func (s *DashboardServiceImpl) ManagerDashboard(ctx context.Context, now time.Time) (*dashboard.ManagerDashboard, error) {
	var (
		roster []employee.Employee
		week   []attendance.Attendance
	)
	trendRange := calendar.LastNDays(dashboard.TrendDays, now.In(s.location))

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Roster
	g.Go(func() error {
		var err error
		roster, err = s.employeeRepo.List(gCtx, employee.RosterFilter(nil))
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})

	// 2. Every record of the trend window, today included
	g.Go(func() error {
		var err error
		week, err = s.attendanceRepo.FindRange(gCtx, nil, trendRange.Start, trendRange.End)
		if err != nil {
			return fmt.Errorf("failed to get weekly attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return composeManager(roster, week, trendRange, now.In(s.location)), nil
}

// composeEmployee builds the employee view. records must cover the recent
// window; they are reordered newest first and capped.
func composeEmployee(today attendance.TodayStatusResponse, month attendance.Summary, records []attendance.Attendance, loc *time.Location) *dashboard.EmployeeDashboard {
	attendanceService.NewestFirst(records)
	if len(records) > dashboard.RecentLimit {
		records = records[:dashboard.RecentLimit]
	}

	return &dashboard.EmployeeDashboard{
		TodayStatus:      today,
		MonthSummary:     month,
		RecentAttendance: attendance.ToResponses(records, loc),
	}
}

// composeManager builds the manager view. Records of employees outside roster,
// managers included, are not counted anywhere, so absent never goes negative.
func composeManager(roster []employee.Employee, week []attendance.Attendance, trendRange calendar.Range, now time.Time) *dashboard.ManagerDashboard {
	inRoster := make(map[string]struct{}, len(roster))
	for _, e := range roster {
		inRoster[e.ID] = struct{}{}
	}

	todayKey := calendar.DateKey(now)
	var scoped, todays []attendance.Attendance
	for _, r := range week {
		if _, ok := inRoster[r.EmployeeID]; !ok {
			continue
		}
		scoped = append(scoped, r)
		if r.DateKey() == todayKey {
			todays = append(todays, r)
		}
	}

	view := &dashboard.ManagerDashboard{
		TotalEmployees:       len(roster),
		AbsentEmployeesToday: []employee.EmployeeResponse{},
		WeeklyTrend:          attendance.DailyTrend(trendRange, len(roster), scoped),
		DepartmentWise:       attendance.DepartmentBreakdown(roster, todays),
	}

	checkedIn := make(map[string]struct{}, len(todays))
	for _, r := range todays {
		if !r.HasCheckedIn() {
			continue
		}
		checkedIn[r.EmployeeID] = struct{}{}
		view.TodayAttendance.Present++
		if r.Status == attendance.StatusLate {
			view.TodayAttendance.Late++
		}
	}
	view.TodayAttendance.Absent = view.TotalEmployees - view.TodayAttendance.Present

	for _, e := range roster {
		if _, ok := checkedIn[e.ID]; !ok {
			view.AbsentEmployeesToday = append(view.AbsentEmployeesToday, employee.ToResponse(e))
		}
	}

	return view
}
