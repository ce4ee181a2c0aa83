package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidRole           = errors.New("role must be employee or manager")
	ErrManagerAccessRequired = errors.New("manager access required")
)
