package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// WorkingDays decides which calendar days are expected attendance days.
// The zero value treats every calendar day as a working day.
type WorkingDays struct {
	rule     *rrule.ROption
	holidays map[string]struct{}
}

// EveryDay returns the calendar where every day is a working day.
func EveryDay() WorkingDays {
	return WorkingDays{}
}

// ParseWorkingDays builds a calendar from a recurrence ("daily", "weekdays",
// "every monday", or a raw RRULE such as "FREQ=WEEKLY;BYDAY=MO,TU") and a list
// of YYYY-MM-DD holidays that never count.
func ParseWorkingDays(recurrence string, holidays []string) (WorkingDays, error) {
	w := WorkingDays{}

	rule, err := parseRecurrence(recurrence)
	if err != nil {
		return WorkingDays{}, err
	}
	w.rule = rule

	for _, h := range holidays {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, h); err != nil {
			return WorkingDays{}, fmt.Errorf("invalid holiday %q: %w", h, err)
		}
		if w.holidays == nil {
			w.holidays = make(map[string]struct{})
		}
		w.holidays[h] = struct{}{}
	}

	return w, nil
}

// In returns the midnight of every working day inside r, oldest first.
func (w WorkingDays) In(r Range) []time.Time {
	var days []time.Time
	if w.rule == nil {
		days = r.Days()
	} else {
		opt := *w.rule
		opt.Dtstart = StartOfDay(r.Start)
		rule, err := rrule.NewRRule(opt)
		if err != nil {
			// options were accepted by parseRecurrence
			return nil
		}
		days = rule.Between(opt.Dtstart, r.End, true)
	}

	if len(w.holidays) == 0 {
		return days
	}
	filtered := days[:0]
	for _, d := range days {
		if _, ok := w.holidays[DateKey(d)]; !ok {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// Contains reports whether day is a working day.
func (w WorkingDays) Contains(day time.Time) bool {
	return len(w.In(DayBounds(day))) > 0
}

// parseRecurrence returns nil for the every-day calendar.
func parseRecurrence(s string) (*rrule.ROption, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if isRawRRule(s) {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		opt, err := rrule.StrToROption(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		if _, err := rrule.NewRRule(*opt); err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		// the rule is anchored at each queried range
		if opt.Count != 0 || !opt.Until.IsZero() || !opt.Dtstart.IsZero() {
			return nil, fmt.Errorf("invalid RRULE %q: COUNT, UNTIL and DTSTART are not allowed", raw)
		}
		return opt, nil
	}

	switch s {
	case "", "daily", "every day":
		return nil, nil
	case "weekdays", "every weekday":
		return &rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		}, nil
	}

	if day, ok := strings.CutPrefix(s, "every "); ok {
		if wd, ok := weekdays[day]; ok {
			return &rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: []rrule.Weekday{wd},
			}, nil
		}
	}

	return nil, fmt.Errorf("unrecognized working days %q", s)
}

func isRawRRule(s string) bool {
	return strings.HasPrefix(s, "rrule:") || strings.HasPrefix(s, "freq=")
}

var weekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}
