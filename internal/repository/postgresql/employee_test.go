package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeRowColumns = []string{"id", "employee_code", "full_name", "email", "department", "role", "created_at", "updated_at"}

type stubRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

func TestScanEmployee(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	row := stubRow{scanFn: func(dest ...interface{}) error {
		require.Len(t, dest, 8)
		*(dest[0].(*string)) = "emp-1"
		*(dest[1].(*string)) = "EMP001"
		*(dest[2].(*string)) = "Ana"
		*(dest[3].(*string)) = "ana@company.com"
		*(dest[4].(*string)) = "Engineering"
		*(dest[5].(*string)) = "manager"
		*(dest[6].(*time.Time)) = now
		*(dest[7].(*time.Time)) = now
		return nil
	}}

	e, err := scanEmployee(row)
	require.NoError(t, err)
	assert.Equal(t, employee.RoleManager, e.Role)
	assert.True(t, e.IsManager())
	assert.Equal(t, now, e.CreatedAt)
}

func TestTranslateEmployeeError(t *testing.T) {
	assert.ErrorIs(t, translateEmployeeError("op", pgx.ErrNoRows), employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, translateEmployeeError("op", &pgconn.PgError{Code: invalidTextCode}), employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, translateEmployeeError("op", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_email_key"}), employee.ErrEmailExists)
	assert.ErrorIs(t, translateEmployeeError("op", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_employee_code_key"}), employee.ErrEmployeeCodeExists)
	assert.ErrorIs(t, translateEmployeeError("op", &pgconn.PgError{Code: checkViolationCode}), employee.ErrInvalidRole)

	err := translateEmployeeError("op", errors.New("timeout"))
	assert.ErrorIs(t, err, attendance.ErrStoreUnavailable)
	assert.ErrorContains(t, err, "op: timeout")
}

func TestEmployeeRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM employees WHERE id = \$1`).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow("emp-1", "EMP001", "Ana", "ana@company.com", "Engineering", "employee", now, now))

	e, err := repo.GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", e.EmployeeCode)
	assert.Equal(t, employee.RoleEmployee, e.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByEmployeeCode_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(`WHERE employee_code = \$1`).
		WithArgs("EMP404").
		WillReturnRows(pgxmock.NewRows(employeeRowColumns))

	_, err := repo.GetByEmployeeCode(context.Background(), "EMP404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM employees WHERE role = \$1 AND LOWER\(department\) = LOWER\(\$2\) ORDER BY employee_code ASC`).
		WithArgs("employee", "engineering").
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow("emp-1", "EMP001", "Ana", "ana@company.com", "Engineering", "employee", now, now).
			AddRow("emp-3", "EMP003", "Citra", "citra@company.com", "Engineering", "employee", now, now))

	dept := "engineering"
	employees, err := repo.List(context.Background(), employee.RosterFilter(&dept))
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "EMP003", employees[1].EmployeeCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_List_NoFilter(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(`FROM employees ORDER BY employee_code ASC`).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns))

	employees, err := repo.List(context.Background(), employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs("emp-1", "EMP001", "Ana", "ana@company.com", "Engineering", "employee").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), employee.Employee{
		ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ana", Email: "ana@company.com", Department: "Engineering", Role: employee.RoleEmployee,
	})
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Create_DuplicateCode(t *testing.T) {
	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs("emp-1", "EMP001", "Ana", "ana@company.com", "Engineering", "employee").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "employees_employee_code_key"})

	_, err := repo.Create(context.Background(), employee.Employee{
		ID: "emp-1", EmployeeCode: "EMP001", FullName: "Ana", Email: "ana@company.com", Department: "Engineering", Role: employee.RoleEmployee,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}
