package attendance

import (
	"math"
	"time"
)

// ComputeHours returns the fractional hours between check-in and check-out.
func ComputeHours(checkInAt, checkOutAt time.Time) (float64, error) {
	if !checkOutAt.After(checkInAt) {
		return 0, ErrInvalidTimeRange
	}
	return checkOutAt.Sub(checkInAt).Hours(), nil
}

// RoundHours rounds to two decimals for display.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
