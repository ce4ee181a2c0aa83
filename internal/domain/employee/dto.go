package employee

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// EmployeeFilter narrows a directory listing. Nil fields do not filter.
type EmployeeFilter struct {
	Role         *Role   `json:"role,omitempty" validate:"omitempty,oneof=employee manager"`
	Department   *string `json:"department,omitempty" validate:"omitempty,max=100"`
	EmployeeCode *string `json:"employee_code,omitempty" validate:"omitempty,max=50"`
}

func (f *EmployeeFilter) Validate() error {
	return validator.Struct(f)
}

// RosterFilter selects employees with role employee, optionally by department.
func RosterFilter(department *string) EmployeeFilter {
	role := RoleEmployee
	return EmployeeFilter{Role: &role, Department: department}
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Role         Role   `json:"role"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		Department:   e.Department,
		Role:         e.Role,
	}
}

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,employee_code"`
	FullName     string `json:"full_name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Department   string `json:"department" validate:"required,max=100"`
	Role         Role   `json:"role" validate:"required,oneof=employee manager"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}
