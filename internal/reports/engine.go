// Package reports computes business activity summaries over fetched
// appointments: totals for worked time and revenue plus a ranked service
// breakdown.
package reports

import (
	"sort"

	"github.com/bajo3/Emme-Client/internal/appointments"
)

// DefaultServiceLabel substitutes for empty service names in the breakdown.
const DefaultServiceLabel = "unspecified"

// DefaultCountedStatuses selects which appointments count toward the report.
// Confirmed appointments count alongside done on purpose: booked-but-not-yet
// performed work is committed work. That policy is pinned by tests.
var DefaultCountedStatuses = []appointments.Status{
	appointments.StatusDone,
	appointments.StatusConfirmed,
}

// ServiceCount is one row of the ranked breakdown.
type ServiceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Report aggregates a set of appointments.
type Report struct {
	TotalAppointments  int            `json:"total_appointments"`
	TotalMinutesWorked int            `json:"total_minutes_worked"`
	TotalHoursWorked   float64        `json:"total_hours_worked"`
	TotalRevenue       float64        `json:"total_revenue"`
	ServiceBreakdown   []ServiceCount `json:"service_breakdown"`
}

// MinutesBetween returns the minutes from start to end, both HH:MM[:SS]
// clock values. Missing or unparsable values, and end at or before start,
// yield zero; durations are never negative.
func MinutesBetween(start, end string) int {
	s, ok := appointments.ParseClock(start)
	if !ok {
		return 0
	}
	e, ok := appointments.ParseClock(end)
	if !ok {
		return 0
	}
	if e <= s {
		return 0
	}
	return e - s
}

// ComputeReport aggregates the appointments whose status is in counted
// (DefaultCountedStatuses when none given). The breakdown sorts by count
// descending; ties keep first-encountered order.
func ComputeReport(appts []appointments.Appointment, counted ...appointments.Status) Report {
	if len(counted) == 0 {
		counted = DefaultCountedStatuses
	}
	wanted := make(map[appointments.Status]bool, len(counted))
	for _, s := range counted {
		wanted[s] = true
	}

	var report Report
	indexByName := make(map[string]int)
	for _, a := range appts {
		if !wanted[a.Status] {
			continue
		}
		report.TotalAppointments++
		report.TotalMinutesWorked += MinutesBetween(a.StartTime, a.EndTime)
		report.TotalRevenue += a.Amount

		name := a.ServiceName
		if name == "" {
			name = DefaultServiceLabel
		}
		if i, ok := indexByName[name]; ok {
			report.ServiceBreakdown[i].Count++
		} else {
			indexByName[name] = len(report.ServiceBreakdown)
			report.ServiceBreakdown = append(report.ServiceBreakdown, ServiceCount{Name: name, Count: 1})
		}
	}

	report.TotalHoursWorked = float64(report.TotalMinutesWorked) / 60
	sort.SliceStable(report.ServiceBreakdown, func(i, j int) bool {
		return report.ServiceBreakdown[i].Count > report.ServiceBreakdown[j].Count
	})
	return report
}
