package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, employee_code, full_name, email, department, role, created_at, updated_at`

type employeeRepository struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		return employee.Employee{}, translateEmployeeError("get employee", err)
	}
	return e, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, employeeCode))
	if err != nil {
		return employee.Employee{}, translateEmployeeError("get employee by code", err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{}
	args := []interface{}{}

	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Department != nil && *filter.Department != "" {
		args = append(args, *filter.Department)
		conditions = append(conditions, fmt.Sprintf("LOWER(department) = LOWER($%d)", len(args)))
	}
	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		args = append(args, *filter.EmployeeCode)
		conditions = append(conditions, fmt.Sprintf("employee_code = $%d", len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY employee_code ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list employees", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, storeError("scan employee", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate employees", err)
	}

	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, employee_code, full_name, email, department, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.EmployeeCode,
		newEmployee.FullName,
		newEmployee.Email,
		newEmployee.Department,
		string(newEmployee.Role),
	).Scan(&newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		return employee.Employee{}, translateEmployeeError("create employee", err)
	}

	return newEmployee, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e    employee.Employee
		role string
	)
	if err := row.Scan(&e.ID, &e.EmployeeCode, &e.FullName, &e.Email, &e.Department, &role, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return employee.Employee{}, err
	}
	e.Role = employee.Role(role)
	return e, nil
}

func translateEmployeeError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	code, pgErr := pgErrorCode(err)
	switch code {
	case uniqueViolationCode:
		if strings.Contains(pgErr.ConstraintName, "email") {
			return employee.ErrEmailExists
		}
		return employee.ErrEmployeeCodeExists
	case invalidTextCode:
		// malformed uuid
		return employee.ErrEmployeeNotFound
	case checkViolationCode:
		return employee.ErrInvalidRole
	default:
		return storeError(op, err)
	}
}
