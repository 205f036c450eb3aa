package agenda

import (
	"sort"
	"time"

	"github.com/bajo3/Emme-Client/internal/appointments"
)

// PartitionByDay buckets appointments by their stored calendar date within
// the inclusive window. Within a day, appointments sort by start time
// ascending; missing or unparsable start times sort last, keeping their
// relative order. Rows whose date fails to parse are excluded, never fatal.
func PartitionByDay(appts []appointments.Appointment, windowStart, windowEnd time.Time) map[string][]appointments.Appointment {
	windowStart = DateOnly(windowStart)
	windowEnd = DateOnly(windowEnd)

	buckets := make(map[string][]appointments.Appointment)
	for _, a := range appts {
		day, ok := a.Day()
		if !ok {
			continue
		}
		if day.Before(windowStart) || day.After(windowEnd) {
			continue
		}
		buckets[a.Date] = append(buckets[a.Date], a)
	}
	for key := range buckets {
		sortByStartTime(buckets[key])
	}
	return buckets
}

// FilterForDay returns the appointments on date whose status belongs to the
// group, ordered by start time.
func FilterForDay(appts []appointments.Appointment, date time.Time, group appointments.Group) []appointments.Appointment {
	want := DateOnly(date)
	var out []appointments.Appointment
	for _, a := range appts {
		day, ok := a.Day()
		if !ok || !day.Equal(want) {
			continue
		}
		if !a.Status.InGroup(group) {
			continue
		}
		out = append(out, a)
	}
	sortByStartTime(out)
	return out
}

// CountForDay counts the appointments on date whose status belongs to the
// group. Day equality is strictly by stored date value.
func CountForDay(appts []appointments.Appointment, date time.Time, group appointments.Group) int {
	want := DateOnly(date)
	count := 0
	for _, a := range appts {
		day, ok := a.Day()
		if !ok || !day.Equal(want) {
			continue
		}
		if a.Status.InGroup(group) {
			count++
		}
	}
	return count
}

func sortByStartTime(list []appointments.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		mi, oki := appointments.ParseClock(list[i].StartTime)
		mj, okj := appointments.ParseClock(list[j].StartTime)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return mi < mj
	})
}
