package attendance

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// Summary aggregates the records of a scope over a date range.
type Summary struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"half_day"`
	TotalHours float64 `json:"total_hours"`
}

// ForDisplay returns s with hours rounded to two decimals.
func (s Summary) ForDisplay() Summary {
	s.TotalHours = RoundHours(s.TotalHours)
	return s
}

// Summarize counts records by status and derives absences. For every employee
// in employeeIDs, each working day in rng without a record counts as absent.
// Future days inside rng are not excluded.
func Summarize(records []Attendance, employeeIDs []string, rng calendar.Range, days calendar.WorkingDays) Summary {
	var s Summary
	attended := make(map[string]map[string]struct{}, len(employeeIDs))

	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusLate:
			s.Late++
		case StatusHalfDay:
			s.HalfDay++
		}
		if r.TotalHours != nil {
			s.TotalHours += *r.TotalHours
		}

		if attended[r.EmployeeID] == nil {
			attended[r.EmployeeID] = make(map[string]struct{})
		}
		attended[r.EmployeeID][r.DateKey()] = struct{}{}
	}

	working := days.In(rng)
	for _, id := range employeeIDs {
		for _, d := range working {
			if _, ok := attended[id][calendar.DateKey(d)]; !ok {
				s.Absent++
			}
		}
	}

	return s
}

type DepartmentStat struct {
	Department string `json:"department"`
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
}

// DepartmentBreakdown reports one day per department, ordered by first
// appearance in roster. Records of employees outside the roster are ignored.
func DepartmentBreakdown(roster []employee.Employee, dayRecords []Attendance) []DepartmentStat {
	index := make(map[string]int)
	deptOf := make(map[string]string, len(roster))
	stats := []DepartmentStat{}

	for _, e := range roster {
		deptOf[e.ID] = e.Department
		i, ok := index[e.Department]
		if !ok {
			i = len(stats)
			index[e.Department] = i
			stats = append(stats, DepartmentStat{Department: e.Department})
		}
		stats[i].Total++
	}

	for _, r := range dayRecords {
		if !r.HasCheckedIn() {
			continue
		}
		dept, ok := deptOf[r.EmployeeID]
		if !ok {
			continue
		}
		stats[index[dept]].Present++
	}

	for i := range stats {
		stats[i].Absent = stats[i].Total - stats[i].Present
	}
	return stats
}

type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// DailyTrend covers rng day by day, oldest first. present counts records with
// a check-in on the day; absent is totalEmployees minus present.
func DailyTrend(rng calendar.Range, totalEmployees int, records []Attendance) []TrendPoint {
	present := make(map[string]int)
	for _, r := range records {
		if r.HasCheckedIn() {
			present[r.DateKey()]++
		}
	}

	days := rng.Days()
	trend := make([]TrendPoint, 0, len(days))
	for _, d := range days {
		key := calendar.DateKey(d)
		trend = append(trend, TrendPoint{
			Date:    key,
			Present: present[key],
			Absent:  totalEmployees - present[key],
		})
	}
	return trend
}
