// Package agenda implements the calendar engine: window bounds per
// granularity, the month grid, day partitioning, and the per-view
// controller.
package agenda

import (
	"fmt"
	"time"

	"github.com/bajo3/Emme-Client/internal/appointments"
)

// Granularity is the calendar unit used to size a window.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is one of the three calendar units.
func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

// Bounds is a contiguous inclusive date range.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// DateOnly strips any time-of-day component. The whole engine works on
// local calendar dates; no timezone conversion happens anywhere.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(appointments.DateLayout, s)
}

// ParseDateOrToday parses a YYYY-MM-DD value, substituting today when the
// input is empty or malformed. Bad reference dates degrade to "today", they
// never fail a view.
func ParseDateOrToday(s string, now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	d, err := ParseDate(s)
	if err != nil {
		return DateOnly(now())
	}
	return d
}

// startOfWeek returns the most recent Monday on or before d. Sunday counts
// as day 7 of the prior week.
func startOfWeek(d time.Time) time.Time {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

// WindowBounds computes the inclusive calendar bounds of the window holding
// ref at the given granularity. Weeks run Monday through Sunday.
func WindowBounds(ref time.Time, g Granularity) Bounds {
	ref = DateOnly(ref)
	switch g {
	case GranularityWeek:
		start := startOfWeek(ref)
		return Bounds{Start: start, End: start.AddDate(0, 0, 6)}
	case GranularityMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Bounds{Start: start, End: start.AddDate(0, 1, -1)}
	default:
		return Bounds{Start: ref, End: ref}
	}
}

// GridDay is one cell of the month grid.
type GridDay struct {
	Date    time.Time
	InMonth bool
}

// GridBounds returns the inclusive bounds of ref's month grid: the Monday
// on/before the 1st through the Sunday on/after the last day. The month view
// fetches and counts over these bounds, not the bare month, so padding cells
// carry real counts.
func GridBounds(ref time.Time) Bounds {
	month := WindowBounds(ref, GranularityMonth)
	start := startOfWeek(month.Start)
	return Bounds{Start: start, End: startOfWeek(month.End).AddDate(0, 0, 6)}
}

// CalendarGrid returns the Monday-aligned grid for ref's month: from the
// Monday on/before the 1st through the Sunday on/after the last day, always
// a whole number of 7-day rows. Adjacent-month padding days carry
// InMonth=false.
func CalendarGrid(ref time.Time) []GridDay {
	month := WindowBounds(ref, GranularityMonth)
	bounds := GridBounds(ref)

	var grid []GridDay
	for d := bounds.Start; !d.After(bounds.End); d = d.AddDate(0, 0, 1) {
		grid = append(grid, GridDay{
			Date:    d,
			InMonth: d.Month() == month.Start.Month() && d.Year() == month.Start.Year(),
		})
	}
	return grid
}

// Advance moves ref one window in the given direction (-1 or +1). Month
// moves preserve the day-of-month where the target month has one, otherwise
// clamp to its last day (Jan 31 +1 month is Feb 29/28).
func Advance(ref time.Time, g Granularity, direction int) time.Time {
	ref = DateOnly(ref)
	switch g {
	case GranularityWeek:
		return ref.AddDate(0, 0, 7*direction)
	case GranularityMonth:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, direction, 0)
		day := ref.Day()
		if last := first.AddDate(0, 1, -1).Day(); day > last {
			day = last
		}
		return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
	default:
		return ref.AddDate(0, 0, direction)
	}
}

// HeaderLabel renders the view header the way the agenda screen titles its
// windows.
func HeaderLabel(ref time.Time, g Granularity) string {
	ref = DateOnly(ref)
	switch g {
	case GranularityWeek:
		b := WindowBounds(ref, GranularityWeek)
		return fmt.Sprintf("Week of %s to %s", b.Start.Format("2 Jan"), b.End.Format("2 Jan"))
	case GranularityMonth:
		return ref.Format("January 2006")
	default:
		return ref.Format("Monday, 2 Jan 2006")
	}
}
