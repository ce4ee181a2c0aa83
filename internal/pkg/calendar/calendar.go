package calendar

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// MaxRangeDays is the longest inclusive range accepted for aggregation
// and export.
const MaxRangeDays = 366

// SpanDays counts the calendar days from start to end inclusive. Both are
// dates at midnight of the same location.
func SpanDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Range is an inclusive time range. End is the last representable
// millisecond of its day.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartOfDay returns local midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayBounds returns the first and last instant of t's calendar day.
func DayBounds(t time.Time) Range {
	return Range{Start: StartOfDay(t), End: EndOfDay(t)}
}

// MonthBounds returns the first day 00:00 through the last day 23:59:59.999
// of the given month.
func MonthBounds(year int, month time.Month, loc *time.Location) Range {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	// day 0 of the next month normalises to the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return Range{Start: first, End: EndOfDay(last)}
}

// LastNDays returns the range covering anchor's day and the n-1 days
// before it. n below 1 is treated as 1.
func LastNDays(n int, anchor time.Time) Range {
	if n < 1 {
		n = 1
	}
	start := StartOfDay(anchor).AddDate(0, 0, -(n - 1))
	return Range{Start: start, End: EndOfDay(anchor)}
}

// Days lists the midnight of every calendar day in r, oldest first.
func (r Range) Days() []time.Time {
	var days []time.Time
	for d := StartOfDay(r.Start); !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DateKey formats t as YYYY-MM-DD using its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
