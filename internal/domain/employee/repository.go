package employee

import "context"

// EmployeeRepository is the read side of the employee directory plus Create for seeding.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	// List returns employees ordered by employee_code.
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
}
