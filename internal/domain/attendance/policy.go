package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, want HH:MM: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// DefaultCutoff is the legacy 09:00 late threshold.
var DefaultCutoff = TimeOfDay{Hour: 9}

// Policy holds the configurable rules for one deployment.
type Policy struct {
	Cutoff      TimeOfDay
	Location    *time.Location
	WorkingDays calendar.WorkingDays
	// ClampFuture trims summary ranges at the end of today.
	ClampFuture bool
}

// DefaultPolicy is 09:00 cutoff, every day a working day, no clamping.
func DefaultPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.Local
	}
	return Policy{
		Cutoff:      DefaultCutoff,
		Location:    loc,
		WorkingDays: calendar.EveryDay(),
	}
}

// Today returns the calendar day containing now in the policy location.
func (p Policy) Today(now time.Time) calendar.Range {
	return calendar.DayBounds(now.In(p.Location))
}
