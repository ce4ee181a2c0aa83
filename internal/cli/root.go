// Package cli implements attendancectl, the developer tool that seeds the
// database, prints its contents and mints bearer tokens.
package cli

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "attendancectl",
	Short:         "Developer tooling for the attendance backend",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(tokenCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// Env is what the commands need from the outside world.
type Env struct {
	Employees   employee.EmployeeRepository
	Attendances attendance.AttendanceRepository
	Policy      attendance.Policy
	JWT         jwt.Service
	Clock       clock.Clock

	// InTx runs fn inside one transaction.
	InTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

// openEnv connects to the configured database. The returned func closes it.
func openEnv(ctx context.Context) (*Env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	policy := cfg.Attendance.Policy()
	env := &Env{
		Employees:   postgresql.NewEmployeeRepository(db),
		Attendances: postgresql.NewAttendanceRepository(db, policy.Location),
		Policy:      policy,
		JWT:         jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration),
		Clock:       clock.System(),
		InTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
	return env, db.Close, nil
}

// withEnv adapts a command body that needs an Env into a cobra RunE.
func withEnv(run func(cmd *cobra.Command, args []string, env *Env) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, closeEnv, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer closeEnv()
		return run(cmd, args, env)
	}
}
