package agenda

import (
	"time"

	"github.com/bajo3/Emme-Client/internal/appointments"
)

// StatusFilter selects which appointments a view shows: "all", a group
// ("active"/"archived"), or one exact status.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterActive   StatusFilter = StatusFilter(appointments.GroupActive)
	FilterArchived StatusFilter = StatusFilter(appointments.GroupArchived)
)

// ParseStatusFilter maps a request value onto a filter, falling back to the
// granularity's default: the day view shows everything, week and month show
// the active group (matching the original agenda screens).
func ParseStatusFilter(s string, g Granularity) StatusFilter {
	f := StatusFilter(s)
	if f.Valid() {
		return f
	}
	if g == GranularityDay {
		return FilterAll
	}
	return FilterActive
}

// Valid reports whether f names a recognized filter.
func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterArchived:
		return true
	}
	return appointments.Status(f).Known()
}

// Matches reports whether an appointment with status s passes the filter.
func (f StatusFilter) Matches(s appointments.Status) bool {
	switch f {
	case FilterAll:
		return true
	case FilterActive:
		return s.InGroup(appointments.GroupActive)
	case FilterArchived:
		return s.InGroup(appointments.GroupArchived)
	}
	return s == appointments.Status(f)
}

// DayCount is the per-day badge count for the week strip and month grid.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// GridCell is one rendered cell of the month grid.
type GridCell struct {
	Date    string `json:"date"`
	InMonth bool   `json:"in_month"`
	Count   int    `json:"count"`
}

// ViewModel is the read-only payload handed to the presentation layer.
type ViewModel struct {
	ReferenceDate string                     `json:"reference_date"`
	Granularity   Granularity                `json:"granularity"`
	Filter        StatusFilter               `json:"filter"`
	WindowStart   string                     `json:"window_start"`
	WindowEnd     string                     `json:"window_end"`
	HeaderLabel   string                     `json:"header_label"`
	Appointments  []appointments.Appointment `json:"appointments"`
	DayCounts     []DayCount                 `json:"day_counts,omitempty"`
	Grid          []GridCell                 `json:"grid,omitempty"`
	Loading       bool                       `json:"loading"`
	Error         string                     `json:"error,omitempty"`
}

// BuildViewModel assembles the renderable view for a window's worth of
// appointments. The appointment list always holds the reference day's
// filtered, time-ordered appointments; week views add per-day counts, month
// views add the padded grid.
func BuildViewModel(appts []appointments.Appointment, ref time.Time, g Granularity, f StatusFilter) ViewModel {
	ref = DateOnly(ref)
	bounds := WindowBounds(ref, g)
	// The month view counts over the padded grid, not just the month, so
	// adjacent-month cells badge real counts.
	partition := bounds
	if g == GranularityMonth {
		partition = GridBounds(ref)
	}
	buckets := PartitionByDay(appts, partition.Start, partition.End)

	vm := ViewModel{
		ReferenceDate: ref.Format(appointments.DateLayout),
		Granularity:   g,
		Filter:        f,
		WindowStart:   bounds.Start.Format(appointments.DateLayout),
		WindowEnd:     bounds.End.Format(appointments.DateLayout),
		HeaderLabel:   HeaderLabel(ref, g),
		Appointments:  filterBucket(buckets[ref.Format(appointments.DateLayout)], f),
	}

	switch g {
	case GranularityWeek:
		for d := bounds.Start; !d.After(bounds.End); d = d.AddDate(0, 0, 1) {
			key := d.Format(appointments.DateLayout)
			vm.DayCounts = append(vm.DayCounts, DayCount{
				Date:  key,
				Count: countBucket(buckets[key], f),
			})
		}
	case GranularityMonth:
		for _, cell := range CalendarGrid(ref) {
			key := cell.Date.Format(appointments.DateLayout)
			vm.Grid = append(vm.Grid, GridCell{
				Date:    key,
				InMonth: cell.InMonth,
				Count:   countBucket(buckets[key], f),
			})
		}
	default:
		vm.DayCounts = []DayCount{{
			Date:  vm.ReferenceDate,
			Count: len(vm.Appointments),
		}}
	}
	return vm
}

func filterBucket(list []appointments.Appointment, f StatusFilter) []appointments.Appointment {
	var out []appointments.Appointment
	for _, a := range list {
		if f.Matches(a.Status) {
			out = append(out, a)
		}
	}
	return out
}

func countBucket(list []appointments.Appointment, f StatusFilter) int {
	n := 0
	for _, a := range list {
		if f.Matches(a.Status) {
			n++
		}
	}
	return n
}
