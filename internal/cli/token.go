package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var tokenCmd = LeafCommand{
	Use:   "token <employee_code>",
	Short: "Mint a bearer token for an employee",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, args []string, env *Env) error {
		return runToken(cmd, env, args[0])
	}),
}.Build()

func runToken(cmd *cobra.Command, env *Env, employeeCode string) error {
	e, err := env.Employees.GetByEmployeeCode(cmd.Context(), employeeCode)
	if err != nil {
		return fmt.Errorf("%s: %w", employeeCode, err)
	}

	token, expiresAt, err := env.JWT.GenerateAccessToken(e.ID, e.Role)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "# %s (%s, %s) expires %s\n", e.FullName, e.EmployeeCode, e.Role, time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintln(out, token)
	return nil
}
