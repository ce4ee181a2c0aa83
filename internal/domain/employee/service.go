package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
}
