package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	s *Store
}

// FindOne implements attendance.AttendanceRepository.
func (r attendanceRepository) FindOne(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return nil, err
	}

	id, ok := r.s.byDay[dayKey(employeeID, day)]
	if !ok {
		return nil, nil
	}
	a := r.s.joined(r.s.attendances[id])
	return &a, nil
}

// FindRange implements attendance.AttendanceRepository.
func (r attendanceRepository) FindRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return nil, err
	}

	var wanted map[string]struct{}
	if employeeIDs != nil {
		wanted = make(map[string]struct{}, len(employeeIDs))
		for _, id := range employeeIDs {
			wanted[id] = struct{}{}
		}
	}

	from, to := start.Format("2006-01-02"), end.Format("2006-01-02")
	records := []attendance.Attendance{}
	for _, a := range r.s.attendances {
		if wanted != nil {
			if _, ok := wanted[a.EmployeeID]; !ok {
				continue
			}
		}
		if key := a.DateKey(); key < from || key > to {
			continue
		}
		records = append(records, r.s.joined(a))
	}

	r.s.sortByDateThenCode(records)
	return records, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (r attendanceRepository) CreateIfAbsent(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return attendance.Attendance{}, err
	}

	key := dayKey(a.EmployeeID, a.Date)
	if _, exists := r.s.byDay[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}

	now := r.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.attendances[a.ID] = a
	r.s.byDay[key] = a.ID
	return r.s.joined(a), nil
}

// Update implements attendance.AttendanceRepository.
func (r attendanceRepository) Update(ctx context.Context, id string, patch attendance.CheckOutPatch) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return attendance.Attendance{}, err
	}

	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if a.CheckOutAt != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	if a.CheckInAt == nil || !patch.CheckOutAt.After(*a.CheckInAt) {
		return attendance.Attendance{}, attendance.ErrInvalidTimeRange
	}

	out, hours := patch.CheckOutAt, patch.TotalHours
	a.CheckOutAt, a.TotalHours = &out, &hours
	a.UpdatedAt = r.s.now()
	r.s.attendances[id] = a
	return r.s.joined(a), nil
}

// List implements attendance.AttendanceRepository.
func (r attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return nil, 0, err
	}

	var matched []attendance.Attendance
	for _, a := range r.s.attendances {
		a = r.s.joined(a)
		if !matches(a, filter) {
			continue
		}
		matched = append(matched, a)
	}

	desc := filter.SortOrder != "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		ki, kj := sortKey(matched[i], filter.SortBy), sortKey(matched[j], filter.SortBy)
		if ki == kj {
			return matched[i].ID < matched[j].ID
		}
		if desc {
			return ki > kj
		}
		return ki < kj
	})

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 || offset >= len(matched) {
		return []attendance.Attendance{}, total, nil
	}
	end := min(offset+filter.Limit, len(matched))
	return matched[offset:end], total, nil
}

func matches(a attendance.Attendance, f attendance.AttendanceFilter) bool {
	key := a.DateKey()
	switch {
	case f.EmployeeCode != nil && (a.EmployeeCode == nil || *a.EmployeeCode != *f.EmployeeCode):
		return false
	case f.Department != nil && (a.Department == nil || !strings.EqualFold(*a.Department, *f.Department)):
		return false
	case f.Status != nil && string(a.Status) != *f.Status:
		return false
	case f.Date != nil && *f.Date != "" && key != *f.Date:
		return false
	case f.StartDate != nil && *f.StartDate != "" && key < *f.StartDate:
		return false
	case f.EndDate != nil && *f.EndDate != "" && key > *f.EndDate:
		return false
	case f.Year != nil && a.Date.Year() != *f.Year:
		return false
	case f.Month != nil && int(a.Date.Month()) != *f.Month:
		return false
	}
	return true
}

func sortKey(a attendance.Attendance, sortBy string) string {
	switch sortBy {
	case "employee_code":
		return deref(a.EmployeeCode)
	case "employee_name":
		return deref(a.EmployeeName)
	case "check_in_at":
		if a.CheckInAt == nil {
			return ""
		}
		return a.CheckInAt.UTC().Format(time.RFC3339Nano)
	case "status":
		return string(a.Status)
	default:
		return a.DateKey()
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
