package employee

import "time"

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleEmployee
}

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if employee can read organization-wide data
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}
