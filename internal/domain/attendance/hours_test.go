package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeHours(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	hours, err := ComputeHours(in, time.Date(2024, 3, 4, 17, 30, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 8.5, hours)

	hours, err = ComputeHours(in, in.Add(20*time.Minute))
	assert.NoError(t, err)
	assert.InDelta(t, 0.3333333, hours, 1e-6)
}

func TestComputeHours_InvalidRange(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	_, err := ComputeHours(in, in)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = ComputeHours(in, in.Add(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 0.33, RoundHours(1.0/3.0))
	assert.Equal(t, 8.5, RoundHours(8.5))
	assert.Equal(t, 7.67, RoundHours(7.666666))
}
