// Package dates holds the calendar arithmetic shared by the streak engine and
// the reporting services: local day windows, day keys and interval overlap.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Window is the half-open range [Start, End) of one local calendar day.
type Window struct {
	Start time.Time
	End   time.Time
}

// NormalizeToLocalMidnight returns the day key of t: local midnight of the
// calendar day containing t in loc.
func NormalizeToLocalMidnight(t time.Time, loc *time.Location) time.Time {
	loc = orLocal(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayWindow bounds the local calendar day containing t. End is the next
// local midnight, which is 24h after Start except across DST transitions.
func DayWindow(t time.Time, loc *time.Location) Window {
	loc = orLocal(loc)
	start := NormalizeToLocalMidnight(t, loc)
	y, m, d := start.Date()
	return Window{
		Start: start,
		End:   time.Date(y, m, d+1, 0, 0, 0, 0, loc),
	}
}

// DaysAgo returns the window of the local day that is i calendar days before
// the day containing now.
func DaysAgo(now time.Time, i int, loc *time.Location) Window {
	loc = orLocal(loc)
	y, m, d := now.In(loc).Date()
	// noon keeps the anchor inside the intended day on 23h and 25h days
	return DayWindow(time.Date(y, m, d-i, 12, 0, 0, 0, loc), loc)
}

// DaysSpanned counts the local calendar days touched by [start, end],
// at least 1.
func DaysSpanned(start, end time.Time, loc *time.Location) int {
	if end.Before(start) {
		return 1
	}
	first := NormalizeToLocalMidnight(start, loc)
	last := NormalizeToLocalMidnight(end, loc)
	days := 1
	for cursor := first; cursor.Before(last); days++ {
		cursor = DayWindow(cursor, loc).End
	}
	return days
}

// ParseDay resolves a caller-supplied day reference. An empty string means
// now, a bare YYYY-MM-DD is a calendar date in loc, and RFC3339 values are
// taken as instants.
func ParseDay(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	if t, err := time.ParseInLocation(dayLayout, raw, orLocal(loc)); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", raw)
}

// FormatDay renders a day key as YYYY-MM-DD in loc.
func FormatDay(t time.Time, loc *time.Location) string {
	return t.In(orLocal(loc)).Format(dayLayout)
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
