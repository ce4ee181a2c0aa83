package report

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

var (
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrUnsupportedFormat  = errors.New("format must be csv or xlsx")
	ErrExportRenderFailed = errors.New("failed to render export")
	ErrDateRangeTooLong   = fmt.Errorf("date range must not exceed %d days", calendar.MaxRangeDays)
)
