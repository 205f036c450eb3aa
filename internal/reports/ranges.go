package reports

import (
	"time"

	"github.com/bajo3/Emme-Client/internal/appointments"
)

// Range names a report period relative to today.
type Range string

const (
	RangeLast7Days  Range = "7d"
	RangeLast30Days Range = "30d"
	RangeAll        Range = "all"
)

// ParseRange maps a request value to a range, defaulting to the last 7
// days.
func ParseRange(s string) Range {
	switch Range(s) {
	case RangeLast30Days:
		return RangeLast30Days
	case RangeAll:
		return RangeAll
	default:
		return RangeLast7Days
	}
}

// Bounds returns the inclusive date bounds for the range ending today.
// bounded is false for RangeAll, where no date filter applies upstream.
func (r Range) Bounds(today time.Time) (from, to string, bounded bool) {
	to = today.Format(appointments.DateLayout)
	switch r {
	case RangeLast7Days:
		return today.AddDate(0, 0, -6).Format(appointments.DateLayout), to, true
	case RangeLast30Days:
		return today.AddDate(0, 0, -29).Format(appointments.DateLayout), to, true
	default:
		return "", "", false
	}
}
