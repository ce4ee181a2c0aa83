// Package memory is an in-process test store with the same contracts as the
// PostgreSQL repositories. Service, handler and CLI tests run against it; it
// keeps nothing across restarts and is not wired into cmd/api.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type Store struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	byDay       map[string]string // employeeID|date -> attendance id
	failure     error
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]attendance.Attendance),
		byDay:       make(map[string]string),
		now:         time.Now,
	}
}

// FailWith makes every subsequent call return err wrapped with
// attendance.ErrStoreUnavailable. nil restores normal operation.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Store) check() error {
	if s.failure != nil {
		return fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, s.failure)
	}
	return nil
}

// Attendances returns the attendance repository view of the store.
func (s *Store) Attendances() attendance.AttendanceRepository {
	return attendanceRepository{s}
}

// Employees returns the employee directory view of the store.
func (s *Store) Employees() employee.EmployeeRepository {
	return employeeRepository{s}
}

// AddEmployee inserts e, replacing any employee with the same ID.
func (s *Store) AddEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

// AddAttendance inserts a as-is, bypassing the check-in rules.
func (s *Store) AddAttendance(a attendance.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendances[a.ID] = a
	s.byDay[dayKey(a.EmployeeID, a.Date)] = a.ID
}

// Len returns the number of stored attendance records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attendances)
}

func dayKey(employeeID string, day time.Time) string {
	return employeeID + "|" + day.Format("2006-01-02")
}

// joined attaches employee fields, like the SQL join does.
func (s *Store) joined(a attendance.Attendance) attendance.Attendance {
	if e, ok := s.employees[a.EmployeeID]; ok {
		code, name, dept := e.EmployeeCode, e.FullName, e.Department
		a.EmployeeCode, a.EmployeeName, a.Department = &code, &name, &dept
	}
	return a
}

func (s *Store) codeOf(employeeID string) string {
	return s.employees[employeeID].EmployeeCode
}

func (s *Store) sortByDateThenCode(records []attendance.Attendance) {
	sort.SliceStable(records, func(i, j int) bool {
		ki, kj := records[i].DateKey(), records[j].DateKey()
		if ki != kj {
			return ki < kj
		}
		return s.codeOf(records[i].EmployeeID) < s.codeOf(records[j].EmployeeID)
	})
}
