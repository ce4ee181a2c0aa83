package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// Dashboard picks the view for role
	Dashboard(ctx context.Context, role employee.Role, employeeID string, now time.Time) (*DashboardResponse, error)

	// EmployeeDashboard returns today's status, the month summary and recent records
	EmployeeDashboard(ctx context.Context, employeeID string, now time.Time) (*EmployeeDashboard, error)

	// ManagerDashboard returns organization-wide figures using goroutines
	ManagerDashboard(ctx context.Context, now time.Time) (*ManagerDashboard, error)
}
