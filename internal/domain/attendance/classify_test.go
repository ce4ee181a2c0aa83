package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	day := func(h, m, s int) time.Time { return time.Date(2024, 3, 4, h, m, s, 0, wib) }

	tests := []struct {
		name    string
		checkIn time.Time
		cutoff  TimeOfDay
		want    Status
	}{
		{"before cutoff", day(8, 59, 0), DefaultCutoff, StatusPresent},
		{"exactly at cutoff", day(9, 0, 0), DefaultCutoff, StatusPresent},
		{"seconds past cutoff minute", day(9, 0, 59), DefaultCutoff, StatusPresent},
		{"one minute late", day(9, 1, 0), DefaultCutoff, StatusLate},
		{"afternoon", day(13, 30, 0), DefaultCutoff, StatusLate},
		{"early morning", day(0, 5, 0), DefaultCutoff, StatusPresent},
		{"custom cutoff", day(8, 31, 0), TimeOfDay{Hour: 8, Minute: 30}, StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.checkIn, tt.cutoff))
		})
	}
}

func TestClassify_UsesTimestampLocation(t *testing.T) {
	// 01:30 UTC is 08:30 in UTC+7
	utc := time.Date(2024, 3, 4, 1, 30, 0, 0, time.UTC)
	wib := time.FixedZone("WIB", 7*60*60)

	assert.Equal(t, StatusPresent, Classify(utc, DefaultCutoff))
	assert.Equal(t, StatusPresent, Classify(utc.In(wib), DefaultCutoff))

	// 02:30 UTC is 09:30 in UTC+7
	later := utc.Add(time.Hour)
	assert.Equal(t, StatusPresent, Classify(later, DefaultCutoff))
	assert.Equal(t, StatusLate, Classify(later.In(wib), DefaultCutoff))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:45")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 8, Minute: 45}, tod)
	assert.Equal(t, "08:45", tod.String())

	for _, bad := range []string{"", "9", "25:00", "09:60", "nine"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}
