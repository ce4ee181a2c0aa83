package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// seedRoster is the demo organization: one manager and five employees.
var seedRoster = []employee.CreateEmployeeRequest{
	{EmployeeCode: "MGR001", FullName: "John Manager", Email: "manager@company.com", Department: "Management", Role: employee.RoleManager},
	{EmployeeCode: "EMP001", FullName: "Alice Smith", Email: "alice@company.com", Department: "Engineering", Role: employee.RoleEmployee},
	{EmployeeCode: "EMP002", FullName: "Bob Johnson", Email: "bob@company.com", Department: "Engineering", Role: employee.RoleEmployee},
	{EmployeeCode: "EMP003", FullName: "Carol Williams", Email: "carol@company.com", Department: "Sales", Role: employee.RoleEmployee},
	{EmployeeCode: "EMP004", FullName: "David Brown", Email: "david@company.com", Department: "Sales", Role: employee.RoleEmployee},
	{EmployeeCode: "EMP005", FullName: "Eva Davis", Email: "eva@company.com", Department: "HR", Role: employee.RoleEmployee},
}

type SeedOptions struct {
	// Days of history ending today.
	Days int
	// Percent chance that an employee attends a given weekday.
	Rate int
	// Seed makes the generated history reproducible.
	Seed uint64
}

type SeedResult struct {
	EmployeesCreated int
	RecordsCreated   int
	RecordsSkipped   int
}

var seedCmd = LeafCommand{
	Use:   "seed",
	Short: "Create the demo roster and weekday attendance history",
	Args:  cobra.NoArgs,
	IntFlags: []IntFlag{
		{Name: "days", Usage: "days of history ending today", Default: 30},
		{Name: "rate", Usage: "attendance chance per employee and weekday, in percent", Default: 80},
		{Name: "seed", Usage: "random seed (0 uses the current time)", Default: 0},
	},
	RunE: withEnv(func(cmd *cobra.Command, args []string, env *Env) error {
		days, _ := cmd.Flags().GetInt("days")
		rate, _ := cmd.Flags().GetInt("rate")
		seed, _ := cmd.Flags().GetInt("seed")
		if seed == 0 {
			seed = int(time.Now().UnixNano())
		}

		return runSeed(cmd, env, SeedOptions{Days: days, Rate: rate, Seed: uint64(seed)})
	}),
}.Build()

func runSeed(cmd *cobra.Command, env *Env, opts SeedOptions) error {
	if opts.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	if opts.Rate < 0 || opts.Rate > 100 {
		return fmt.Errorf("rate must be between 0 and 100")
	}

	var result SeedResult
	err := env.InTx(cmd.Context(), func(ctx context.Context) error {
		var err error
		result, err = seed(ctx, env, opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Employees created: %d\n", result.EmployeesCreated)
	_, _ = fmt.Fprintf(out, "Attendance records created: %d (skipped %d existing)\n", result.RecordsCreated, result.RecordsSkipped)
	_, _ = fmt.Fprintln(out, "Mint a token with: attendancectl token MGR001")
	return nil
}

func seed(ctx context.Context, env *Env, opts SeedOptions) (SeedResult, error) {
	var result SeedResult

	employees := employeeService.NewEmployeeService(env.Employees)
	var staff []employee.Employee
	for _, req := range seedRoster {
		// look up first: a failed insert would abort the surrounding transaction
		e, err := env.Employees.GetByEmployeeCode(ctx, req.EmployeeCode)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			if _, err = employees.Create(ctx, req); err != nil {
				return result, fmt.Errorf("create %s: %w", req.EmployeeCode, err)
			}
			result.EmployeesCreated++
			e, err = env.Employees.GetByEmployeeCode(ctx, req.EmployeeCode)
		}
		if err != nil {
			return result, fmt.Errorf("load %s: %w", req.EmployeeCode, err)
		}

		if e.Role == employee.RoleEmployee {
			staff = append(staff, e)
		}
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	now := env.Clock.Now().In(env.Policy.Location)
	today := calendar.StartOfDay(now)

	for i := 0; i < opts.Days; i++ {
		day := today.AddDate(0, 0, -i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		for _, e := range staff {
			if rng.IntN(100) >= opts.Rate {
				continue
			}

			checkIn := day.Add(time.Duration(8+rng.IntN(2))*time.Hour + time.Duration(rng.IntN(60))*time.Minute)
			checkOut := checkIn.Add(time.Duration(8+rng.IntN(2)) * time.Hour)
			if checkIn.After(now) {
				continue
			}

			created, err := seedRecord(ctx, env, e, day, checkIn, checkOut, now)
			if err != nil {
				return result, err
			}
			if created {
				result.RecordsCreated++
			} else {
				result.RecordsSkipped++
			}
		}
	}

	return result, nil
}

// seedRecord goes through the same create-then-patch path as the API. A
// check-out still in the future leaves the record open.
func seedRecord(ctx context.Context, env *Env, e employee.Employee, day, checkIn, checkOut, now time.Time) (bool, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return false, err
	}

	in := checkIn.UTC()
	record, err := env.Attendances.CreateIfAbsent(ctx, attendance.Attendance{
		ID:         id.String(),
		EmployeeID: e.ID,
		Date:       day,
		CheckInAt:  &in,
		Status:     attendance.Classify(checkIn, env.Policy.Cutoff),
	})
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create attendance for %s on %s: %w", e.EmployeeCode, calendar.DateKey(day), err)
	}

	if checkOut.After(now) {
		return true, nil
	}

	hours, err := attendance.ComputeHours(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	if _, err := env.Attendances.Update(ctx, record.ID, attendance.CheckOutPatch{
		CheckOutAt: checkOut.UTC(),
		TotalHours: hours,
	}); err != nil {
		return false, fmt.Errorf("check out %s on %s: %w", e.EmployeeCode, calendar.DateKey(day), err)
	}
	return true, nil
}
