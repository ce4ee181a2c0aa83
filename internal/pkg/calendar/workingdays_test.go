package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, DateKey(d))
	}
	return out
}

func TestWorkingDays_ZeroValueIsEveryDay(t *testing.T) {
	var w WorkingDays

	// Mon 2024-03-04 .. Sun 2024-03-10
	r := Range{Start: time.Date(2024, 3, 4, 0, 0, 0, 0, jakarta), End: EndOfDay(time.Date(2024, 3, 10, 0, 0, 0, 0, jakarta))}

	assert.Len(t, w.In(r), 7)
	assert.True(t, w.Contains(time.Date(2024, 3, 9, 12, 0, 0, 0, jakarta)))
}

func TestParseWorkingDays(t *testing.T) {
	week := Range{
		Start: time.Date(2024, 3, 4, 0, 0, 0, 0, jakarta),
		End:   EndOfDay(time.Date(2024, 3, 10, 0, 0, 0, 0, jakarta)),
	}

	tests := []struct {
		name       string
		recurrence string
		holidays   []string
		want       []string
	}{
		{
			name:       "daily",
			recurrence: "daily",
			want:       []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"},
		},
		{
			name:       "empty defaults to daily",
			recurrence: "",
			want:       []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"},
		},
		{
			name:       "weekdays",
			recurrence: "weekdays",
			want:       []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08"},
		},
		{
			name:       "weekdays minus holiday",
			recurrence: "Every Weekday",
			holidays:   []string{"2024-03-06", " "},
			want:       []string{"2024-03-04", "2024-03-05", "2024-03-07", "2024-03-08"},
		},
		{
			name:       "single weekday",
			recurrence: "every friday",
			want:       []string{"2024-03-08"},
		},
		{
			name:       "raw rrule",
			recurrence: "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
			want:       []string{"2024-03-04", "2024-03-06", "2024-03-08"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWorkingDays(tt.recurrence, tt.holidays)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(w.In(week)))
		})
	}
}

func TestParseWorkingDays_RangeStartingMidWeek(t *testing.T) {
	w, err := ParseWorkingDays("weekdays", nil)
	require.NoError(t, err)

	// Thu 2024-03-07 .. Tue 2024-03-12
	r := Range{
		Start: time.Date(2024, 3, 7, 0, 0, 0, 0, jakarta),
		End:   EndOfDay(time.Date(2024, 3, 12, 0, 0, 0, 0, jakarta)),
	}

	assert.Equal(t, []string{"2024-03-07", "2024-03-08", "2024-03-11", "2024-03-12"}, keys(w.In(r)))
	assert.False(t, w.Contains(time.Date(2024, 3, 9, 10, 0, 0, 0, jakarta)))
	assert.True(t, w.Contains(time.Date(2024, 3, 11, 23, 0, 0, 0, jakarta)))
}

func TestParseWorkingDays_Invalid(t *testing.T) {
	_, err := ParseWorkingDays("fortnightly-ish", nil)
	assert.Error(t, err)

	_, err = ParseWorkingDays("FREQ=SOMETIMES", nil)
	assert.Error(t, err)

	_, err = ParseWorkingDays("daily", []string{"2024-13-01"})
	assert.Error(t, err)

	for _, rule := range []string{
		"FREQ=DAILY;COUNT=3",
		"FREQ=WEEKLY;BYDAY=MO,TU;UNTIL=20240105T000000Z",
		"DTSTART=20240101T000000Z;FREQ=DAILY",
	} {
		_, err = ParseWorkingDays(rule, nil)
		assert.Error(t, err, rule)
	}
}
