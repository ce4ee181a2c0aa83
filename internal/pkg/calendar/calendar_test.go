package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func TestSpanDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse(DateLayout, s)
		require.NoError(t, err)
		return d
	}
	assert.Equal(t, 1, SpanDays(day("2024-03-01"), day("2024-03-01")))
	assert.Equal(t, 31, SpanDays(day("2024-03-01"), day("2024-03-31")))
	assert.Equal(t, 366, SpanDays(day("2024-01-01"), day("2024-12-31")))
	assert.Greater(t, SpanDays(day("0001-01-01"), day("9999-12-31")), MaxRangeDays)
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, 3, 15, 13, 45, 10, 0, jakarta)

	r := DayBounds(at)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, jakarta), r.Start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999000000, jakarta), r.End)
	assert.True(t, r.Contains(at))
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.End.Add(time.Millisecond)))
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		lastDay int
	}{
		{"leap february", 2024, time.February, 29},
		{"common february", 2023, time.February, 28},
		{"thirty day month", 2024, time.April, 30},
		{"december rolls year", 2024, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MonthBounds(tt.year, tt.month, time.UTC)

			assert.Equal(t, time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC), r.Start)
			assert.Equal(t, time.Date(tt.year, tt.month, tt.lastDay, 23, 59, 59, 999000000, time.UTC), r.End)
			assert.Len(t, r.Days(), tt.lastDay)
		})
	}
}

func TestLastNDays(t *testing.T) {
	anchor := time.Date(2024, 3, 3, 8, 0, 0, 0, jakarta)

	r := LastNDays(7, anchor)

	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, jakarta), r.Start)
	assert.Equal(t, EndOfDay(anchor), r.End)

	days := r.Days()
	require.Len(t, days, 7)
	assert.Equal(t, "2024-02-26", DateKey(days[0]))
	assert.Equal(t, "2024-03-03", DateKey(days[6]))
}

func TestLastNDays_NonPositiveIsSingleDay(t *testing.T) {
	anchor := time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, DayBounds(anchor), LastNDays(0, anchor))
	assert.Equal(t, DayBounds(anchor), LastNDays(-3, anchor))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29", jakarta)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, jakarta), d)

	_, err = ParseDate("2023-02-29", jakarta)
	assert.Error(t, err)
}
