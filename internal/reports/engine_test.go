package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bajo3/Emme-Client/internal/appointments"
)

func TestMinutesBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"plain interval", "09:00", "10:30", 90},
		{"seconds ignored", "09:00:00", "10:30:45", 90},
		{"single-digit hour with seconds", "9:00:00", "10:30", 90},
		{"inverted clamps to zero", "10:00", "09:00", 0},
		{"equal clamps to zero", "10:00", "10:00", 0},
		{"missing start", "", "10:00", 0},
		{"missing end", "09:00", "", 0},
		{"garbage start", "soonish", "10:00", 0},
		{"out of range hour", "25:00", "26:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinutesBetween(tt.start, tt.end))
		})
	}
}

func TestComputeReportSingleDay(t *testing.T) {
	// A done appointment with an hour of work and a cancelled one that
	// contributes nothing.
	appts := []appointments.Appointment{
		{Date: "2024-03-04", StartTime: "09:00", EndTime: "10:00", Status: appointments.StatusDone, Amount: 1000},
		{Date: "2024-03-04", Status: appointments.StatusCancelled},
	}

	r := ComputeReport(appts)
	assert.Equal(t, 1, r.TotalAppointments)
	assert.Equal(t, 60, r.TotalMinutesWorked)
	assert.Equal(t, 1.0, r.TotalHoursWorked)
	assert.Equal(t, 1000.0, r.TotalRevenue)
}

func TestComputeReportCountsConfirmed(t *testing.T) {
	// Policy: confirmed-but-not-yet-done appointments count as committed
	// work.
	appts := []appointments.Appointment{
		{StartTime: "09:00", EndTime: "09:45", Status: appointments.StatusConfirmed, Amount: 500},
		{StartTime: "10:00", EndTime: "11:00", Status: appointments.StatusPending, Amount: 900},
	}

	r := ComputeReport(appts)
	assert.Equal(t, 1, r.TotalAppointments)
	assert.Equal(t, 45, r.TotalMinutesWorked)
	assert.Equal(t, 500.0, r.TotalRevenue)
}

func TestComputeReportFractionalHours(t *testing.T) {
	appts := []appointments.Appointment{
		{StartTime: "09:00", EndTime: "09:30", Status: appointments.StatusDone},
	}
	r := ComputeReport(appts)
	assert.Equal(t, 0.5, r.TotalHoursWorked, "hours are fractional, not rounded")
}

func TestServiceBreakdownRankedWithStableTies(t *testing.T) {
	appts := []appointments.Appointment{
		{ServiceName: "Cut", Status: appointments.StatusDone},
		{ServiceName: "Cut", Status: appointments.StatusDone},
		{ServiceName: "Color", Status: appointments.StatusDone},
	}

	r := ComputeReport(appts)
	require.Len(t, r.ServiceBreakdown, 2)
	assert.Equal(t, ServiceCount{Name: "Cut", Count: 2}, r.ServiceBreakdown[0])
	assert.Equal(t, ServiceCount{Name: "Color", Count: 1}, r.ServiceBreakdown[1])

	// Ties keep first-encountered order.
	tied := []appointments.Appointment{
		{ServiceName: "Brows", Status: appointments.StatusDone},
		{ServiceName: "Nails", Status: appointments.StatusDone},
		{ServiceName: "Lashes", Status: appointments.StatusDone},
	}
	r = ComputeReport(tied)
	require.Len(t, r.ServiceBreakdown, 3)
	assert.Equal(t, "Brows", r.ServiceBreakdown[0].Name)
	assert.Equal(t, "Nails", r.ServiceBreakdown[1].Name)
	assert.Equal(t, "Lashes", r.ServiceBreakdown[2].Name)
}

func TestServiceBreakdownDefaultLabel(t *testing.T) {
	appts := []appointments.Appointment{
		{Status: appointments.StatusDone},
		{ServiceName: "Cut", Status: appointments.StatusDone},
		{Status: appointments.StatusConfirmed},
	}

	r := ComputeReport(appts)
	require.Len(t, r.ServiceBreakdown, 2)
	assert.Equal(t, ServiceCount{Name: DefaultServiceLabel, Count: 2}, r.ServiceBreakdown[0])
}

func TestComputeReportCustomStatuses(t *testing.T) {
	appts := []appointments.Appointment{
		{StartTime: "09:00", EndTime: "10:00", Status: appointments.StatusDone},
		{StartTime: "10:00", EndTime: "11:00", Status: appointments.StatusConfirmed},
	}

	r := ComputeReport(appts, appointments.StatusDone)
	assert.Equal(t, 1, r.TotalAppointments)
	assert.Equal(t, 60, r.TotalMinutesWorked)
}

func TestRangeBounds(t *testing.T) {
	today := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	from, to, bounded := RangeLast7Days.Bounds(today)
	assert.True(t, bounded)
	assert.Equal(t, "2024-02-29", from, "today inclusive: 7 days back is -6")
	assert.Equal(t, "2024-03-06", to)

	from, _, bounded = RangeLast30Days.Bounds(today)
	assert.True(t, bounded)
	assert.Equal(t, "2024-02-06", from)

	_, _, bounded = RangeAll.Bounds(today)
	assert.False(t, bounded)
}

func TestParseRange(t *testing.T) {
	assert.Equal(t, RangeLast7Days, ParseRange(""))
	assert.Equal(t, RangeLast7Days, ParseRange("weekly"))
	assert.Equal(t, RangeLast30Days, ParseRange("30d"))
	assert.Equal(t, RangeAll, ParseRange("all"))
}
