package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

const (
	EventCheckedIn  = "attendance.checked_in"
	EventCheckedOut = "attendance.checked_out"
)

// Publisher fans committed transitions out to live subscribers.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	policy         attendance.Policy
	events         Publisher
}

// NewAttendanceService wires the state machine. events may be nil.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy attendance.Policy,
	events Publisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policy:         policy,
		events:         events,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, now time.Time) (attendance.AttendanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	local := now.In(s.policy.Location)
	today := calendar.StartOfDay(local)

	existing, err := s.attendanceRepo.FindOne(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	checkInAt := now.UTC()
	created, err := s.attendanceRepo.CreateIfAbsent(ctx, attendance.Attendance{
		ID:         id.String(),
		EmployeeID: emp.ID,
		Date:       today,
		CheckInAt:  &checkInAt,
		Status:     attendance.Classify(local, s.policy.Cutoff),
	})
	if err != nil {
		// a concurrent check-in for the same day surfaces as ErrAlreadyCheckedIn
		return attendance.AttendanceResponse{}, err
	}

	withEmployee(&created, emp)
	resp := attendance.ToResponse(created, s.policy.Location)

	slog.Info("employee checked in", "employee_id", emp.ID, "date", created.DateKey(), "status", created.Status)
	s.publish(EventCheckedIn, resp)

	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, now time.Time) (attendance.AttendanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	today := calendar.StartOfDay(now.In(s.policy.Location))

	record, err := s.attendanceRepo.FindOne(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || !record.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNoActiveCheckIn
	}
	if record.HasCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	hours, err := attendance.ComputeHours(*record.CheckInAt, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.Update(ctx, record.ID, attendance.CheckOutPatch{
		CheckOutAt: now.UTC(),
		TotalHours: hours,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	withEmployee(&updated, emp)
	resp := attendance.ToResponse(updated, s.policy.Location)

	slog.Info("employee checked out", "employee_id", emp.ID, "date", updated.DateKey(), "total_hours", attendance.RoundHours(hours))
	s.publish(EventCheckedOut, resp)

	return resp, nil
}

// TodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context, employeeID string, now time.Time) (attendance.TodayStatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	record, err := s.attendanceRepo.FindOne(ctx, emp.ID, calendar.StartOfDay(now.In(s.policy.Location)))
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return todayStatus(record, s.policy.Location), nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string, filter attendance.MonthFilter, now time.Time) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	rng := filter.Range(now, s.policy.Location)
	records, err := s.attendanceRepo.FindRange(ctx, []string{emp.ID}, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}

	NewestFirst(records)
	return attendance.ToResponses(records, s.policy.Location), nil
}

// MySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MySummary(ctx context.Context, employeeID string, filter attendance.MonthFilter, now time.Time) (attendance.SummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return s.summarize(ctx, []string{emp.ID}, filter.Range(now, s.policy.Location), now)
}

// Summarize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, req attendance.SummaryRequest, now time.Time) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	rng, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	var ids []string
	if req.EmployeeCode != nil {
		emp, err := s.employeeRepo.GetByEmployeeCode(ctx, *req.EmployeeCode)
		if err != nil {
			return attendance.SummaryResponse{}, err
		}
		ids = []string{emp.ID}
	} else {
		roster, err := s.employeeRepo.List(ctx, employee.RosterFilter(req.Department))
		if err != nil {
			return attendance.SummaryResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
		ids = employeeIDs(roster)
	}

	return s.summarize(ctx, ids, rng, now)
}

// TeamSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TeamSummary(ctx context.Context, filter attendance.MonthFilter, now time.Time) (attendance.TeamSummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.TeamSummaryResponse{}, err
	}

	rng := filter.Range(now, s.policy.Location)
	roster, err := s.employeeRepo.List(ctx, employee.RosterFilter(nil))
	if err != nil {
		return attendance.TeamSummaryResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := attendance.TeamSummaryResponse{
		Month:     int(rng.Start.Month()),
		Year:      rng.Start.Year(),
		Employees: make([]attendance.EmployeeSummary, 0, len(roster)),
	}

	rng, ok := s.clamp(rng, now)
	if !ok {
		for _, e := range roster {
			resp.Employees = append(resp.Employees, employeeSummary(e, attendance.Summary{}))
		}
		return resp, nil
	}

	ids := employeeIDs(roster)
	records, err := s.findRange(ctx, ids, rng)
	if err != nil {
		return attendance.TeamSummaryResponse{}, err
	}

	byEmployee := make(map[string][]attendance.Attendance, len(roster))
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	for _, e := range roster {
		summary := attendance.Summarize(byEmployee[e.ID], []string{e.ID}, rng, s.policy.WorkingDays)
		resp.Employees = append(resp.Employees, employeeSummary(e, summary.ForDisplay()))
	}
	resp.Total = attendance.Summarize(records, ids, rng, s.policy.WorkingDays).ForDisplay()

	return resp, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: attendance.ToResponses(records, s.policy.Location),
	}, nil
}

// summarize applies the future clamp before aggregating. The response carries
// the range actually aggregated.
func (s *AttendanceServiceImpl) summarize(ctx context.Context, ids []string, rng calendar.Range, now time.Time) (attendance.SummaryResponse, error) {
	clamped, ok := s.clamp(rng, now)
	if !ok {
		return summaryResponse(rng, len(ids), attendance.Summary{}), nil
	}

	records, err := s.findRange(ctx, ids, clamped)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	summary := attendance.Summarize(records, ids, clamped, s.policy.WorkingDays).ForDisplay()
	return summaryResponse(clamped, len(ids), summary), nil
}

// clamp trims rng at the end of today when the policy asks for it. It
// returns false when nothing of rng is left.
func (s *AttendanceServiceImpl) clamp(rng calendar.Range, now time.Time) (calendar.Range, bool) {
	if !s.policy.ClampFuture {
		return rng, true
	}
	endOfToday := calendar.EndOfDay(now.In(s.policy.Location))
	if rng.End.After(endOfToday) {
		rng.End = endOfToday
	}
	return rng, !rng.Start.After(rng.End)
}

func (s *AttendanceServiceImpl) findRange(ctx context.Context, ids []string, rng calendar.Range) ([]attendance.Attendance, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	records, err := s.attendanceRepo.FindRange(ctx, ids, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	return records, nil
}

func (s *AttendanceServiceImpl) parseRange(startDate, endDate string) (calendar.Range, error) {
	start, err := calendar.ParseDate(startDate, s.policy.Location)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := calendar.ParseDate(endDate, s.policy.Location)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("invalid end_date: %w", err)
	}
	return calendar.Range{Start: start, End: calendar.EndOfDay(end)}, nil
}

func (s *AttendanceServiceImpl) publish(event string, resp attendance.AttendanceResponse) {
	if s.events == nil {
		return
	}
	s.events.Publish(sse.TopicAttendance, sse.Event{Event: event, Data: resp})
}

func todayStatus(record *attendance.Attendance, loc *time.Location) attendance.TodayStatusResponse {
	if record == nil {
		return attendance.TodayStatusResponse{}
	}
	resp := attendance.ToResponse(*record, loc)
	return attendance.TodayStatusResponse{
		CheckedIn:  record.HasCheckedIn(),
		CheckedOut: record.HasCheckedOut(),
		Attendance: &resp,
	}
}

func summaryResponse(rng calendar.Range, employees int, summary attendance.Summary) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		StartDate:     calendar.DateKey(rng.Start),
		EndDate:       calendar.DateKey(rng.End),
		EmployeeCount: employees,
		Summary:       summary,
	}
}

func employeeSummary(e employee.Employee, summary attendance.Summary) attendance.EmployeeSummary {
	return attendance.EmployeeSummary{
		EmployeeID:   e.ID,
		EmployeeCode: e.EmployeeCode,
		EmployeeName: e.FullName,
		Department:   e.Department,
		Summary:      summary,
	}
}

func withEmployee(a *attendance.Attendance, e employee.Employee) {
	a.EmployeeCode = &e.EmployeeCode
	a.EmployeeName = &e.FullName
	a.Department = &e.Department
}

func employeeIDs(employees []employee.Employee) []string {
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	return ids
}

// NewestFirst sorts records by day, latest first.
func NewestFirst(records []attendance.Attendance) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}
