package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// identity returns the authenticated caller, writing 401 when absent.
func identity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
	}
	return id, ok
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// optionalString returns nil for a missing or empty parameter.
func optionalString(r *http.Request, key string) *string {
	if val := r.URL.Query().Get(key); val != "" {
		return &val
	}
	return nil
}

// optionalInt returns nil for a missing parameter and a validation error for
// one that is not a number.
func optionalInt(r *http.Request, key string) (*int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: key + " must be a number"}}
	}
	return &n, nil
}

// monthFilter reads month and year; zero means the current month.
func monthFilter(r *http.Request) (attendance.MonthFilter, error) {
	month, err := optionalInt(r, "month")
	if err != nil {
		return attendance.MonthFilter{}, err
	}
	year, err := optionalInt(r, "year")
	if err != nil {
		return attendance.MonthFilter{}, err
	}

	filter := attendance.MonthFilter{}
	if month != nil {
		filter.Month = *month
	}
	if year != nil {
		filter.Year = *year
	}
	return filter, nil
}
