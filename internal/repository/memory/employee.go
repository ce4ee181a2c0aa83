package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

// GetByID implements employee.EmployeeRepository.
func (r employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return employee.Employee{}, err
	}

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (r employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return employee.Employee{}, err
	}

	for _, e := range r.s.employees {
		if e.EmployeeCode == employeeCode {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// List implements employee.EmployeeRepository.
func (r employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return nil, err
	}

	out := []employee.Employee{}
	for _, e := range r.s.employees {
		if filter.Role != nil && e.Role != *filter.Role {
			continue
		}
		if filter.Department != nil && !strings.EqualFold(e.Department, *filter.Department) {
			continue
		}
		if filter.EmployeeCode != nil && e.EmployeeCode != *filter.EmployeeCode {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

// Create implements employee.EmployeeRepository.
func (r employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check(); err != nil {
		return employee.Employee{}, err
	}

	for _, e := range r.s.employees {
		if e.EmployeeCode == newEmployee.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if strings.EqualFold(e.Email, newEmployee.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	now := r.s.now()
	newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
	r.s.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}
