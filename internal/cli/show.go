package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/spf13/cobra"
)

var showCmd = LeafCommand{
	Use:   "show",
	Short: "Print employees, recent attendance and the current month",
	Args:  cobra.NoArgs,
	IntFlags: []IntFlag{
		{Name: "recent", Usage: "number of recent records to print", Default: 10},
	},
	RunE: withEnv(func(cmd *cobra.Command, args []string, env *Env) error {
		recent, _ := cmd.Flags().GetInt("recent")
		return runShow(cmd, env, recent)
	}),
}.Build()

func runShow(cmd *cobra.Command, env *Env, recent int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	loc := env.Policy.Location
	now := env.Clock.Now()

	employees, err := env.Employees.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return err
	}

	section(out, fmt.Sprintf("EMPLOYEES (%d total)", len(employees)))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CODE\tNAME\tROLE\tDEPARTMENT\tEMAIL")
	for _, e := range employees {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.EmployeeCode, e.FullName, e.Role, e.Department, e.Email)
	}
	_ = tw.Flush()

	month := calendar.MonthBounds(now.In(loc).Year(), now.In(loc).Month(), loc)
	window := calendar.LastNDays(30, now.In(loc))
	from := window.Start
	if month.Start.Before(from) {
		from = month.Start
	}
	records, err := env.Attendances.FindRange(ctx, nil, from, window.End)
	if err != nil {
		return err
	}

	today := calendar.DateKey(now.In(loc))
	var lastDays []attendance.Attendance
	todayCount := 0
	for _, r := range records {
		if !window.Contains(r.Date) {
			continue
		}
		lastDays = append(lastDays, r)
		if r.DateKey() == today {
			todayCount++
		}
	}
	section(out, "ATTENDANCE")
	_, _ = fmt.Fprintf(out, "Records in the last 30 days: %d\n", len(lastDays))
	_, _ = fmt.Fprintf(out, "Records today (%s): %d\n", today, todayCount)

	newest := lastDays
	attendanceService.NewestFirst(newest)
	if len(newest) > recent {
		newest = newest[:recent]
	}
	section(out, fmt.Sprintf("RECENT ATTENDANCE (last %d)", len(newest)))
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tCODE\tNAME\tSTATUS\tCHECK IN\tCHECK OUT\tHOURS")
	for _, r := range newest {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.DateKey(), deref(r.EmployeeCode), deref(r.EmployeeName), r.Status,
			clockTime(r.CheckInAt, loc), clockTime(r.CheckOutAt, loc), hours(r.TotalHours))
	}
	_ = tw.Flush()

	svc := attendanceService.NewAttendanceService(env.Attendances, env.Employees, env.Policy, nil)
	team, err := svc.TeamSummary(ctx, attendance.MonthFilter{}, now)
	if err != nil {
		return err
	}

	byStatus := map[attendance.Status]int{}
	byDepartment := map[string]int{}
	for _, r := range records {
		if !month.Contains(r.Date) {
			continue
		}
		byStatus[r.Status]++
		byDepartment[deref(r.Department)]++
	}

	section(out, fmt.Sprintf("CURRENT MONTH (%d-%02d)", team.Year, team.Month))
	_, _ = fmt.Fprintf(out, "Present: %d\n", team.Total.Present)
	_, _ = fmt.Fprintf(out, "Absent: %d\n", team.Total.Absent)
	_, _ = fmt.Fprintf(out, "Late: %d\n", team.Total.Late)
	_, _ = fmt.Fprintf(out, "Half Day: %d\n", team.Total.HalfDay)
	_, _ = fmt.Fprintf(out, "Total Hours: %.2f\n", team.Total.TotalHours)

	section(out, "RECORDS BY STATUS (current month)")
	for _, status := range []attendance.Status{attendance.StatusPresent, attendance.StatusLate, attendance.StatusHalfDay} {
		_, _ = fmt.Fprintf(out, "%s: %d\n", status, byStatus[status])
	}

	section(out, "RECORDS BY DEPARTMENT (current month)")
	departments := make([]string, 0, len(byDepartment))
	for d := range byDepartment {
		departments = append(departments, d)
	}
	sort.Slice(departments, func(i, j int) bool {
		if byDepartment[departments[i]] != byDepartment[departments[j]] {
			return byDepartment[departments[i]] > byDepartment[departments[j]]
		}
		return departments[i] < departments[j]
	})
	for _, d := range departments {
		_, _ = fmt.Fprintf(out, "%s: %d\n", d, byDepartment[d])
	}

	return nil
}

func section(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", 60))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func clockTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("15:04")
}

func hours(h *float64) string {
	if h == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *h)
}
