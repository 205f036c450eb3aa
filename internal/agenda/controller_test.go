package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bajo3/Emme-Client/internal/appointments"
)

type fetchCall struct {
	view    string
	filter  appointments.Filter
	release chan struct{}
	appts   []appointments.Appointment
	err     error
}

// blockingFetcher parks every fetch until the test releases it, so tests can
// interleave responses deliberately.
type blockingFetcher struct {
	started chan *fetchCall
}

func (f *blockingFetcher) Fetch(ctx context.Context, view string, filter appointments.Filter) ([]appointments.Appointment, error) {
	call := &fetchCall{view: view, filter: filter, release: make(chan struct{})}
	f.started <- call
	<-call.release
	return call.appts, call.err
}

type immediateFetcher struct {
	appts  []appointments.Appointment
	err    error
	filter appointments.Filter
	calls  int
}

func (f *immediateFetcher) Fetch(ctx context.Context, view string, filter appointments.Filter) ([]appointments.Appointment, error) {
	f.calls++
	f.filter = filter
	return f.appts, f.err
}

type recordingWriter struct {
	err    error
	lastID string
	lastTo appointments.Status
}

func (w *recordingWriter) ChangeStatus(ctx context.Context, id string, to appointments.Status) (*appointments.Appointment, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.lastID = id
	w.lastTo = to
	return &appointments.Appointment{ID: id, Status: to}, nil
}

func fixedClock(s string) func() time.Time {
	return func() time.Time { return date(s) }
}

func TestRefreshDiscardsSupersededResponse(t *testing.T) {
	f := &blockingFetcher{started: make(chan *fetchCall, 2)}
	c := NewController(f, nil, nil).WithClock(fixedClock("2024-03-06"))

	done1 := make(chan error, 1)
	go func() { done1 <- c.Refresh(context.Background()) }()
	first := <-f.started

	done2 := make(chan error, 1)
	go func() { done2 <- c.Refresh(context.Background()) }()
	second := <-f.started

	// The newer fetch completes first.
	second.appts = []appointments.Appointment{{ID: "fresh", Date: "2024-03-06", Status: appointments.StatusPending}}
	close(second.release)
	require.NoError(t, <-done2)

	// The stale response straggles in afterwards; it must be discarded.
	first.appts = []appointments.Appointment{{ID: "stale", Date: "2024-03-06", Status: appointments.StatusPending}}
	close(first.release)
	require.NoError(t, <-done1)

	vm := c.ViewModel()
	require.Len(t, vm.Appointments, 1)
	assert.Equal(t, "fresh", vm.Appointments[0].ID)
	assert.False(t, vm.Loading)
}

func TestRefreshKeepsLastKnownGoodOnFailure(t *testing.T) {
	f := &immediateFetcher{appts: []appointments.Appointment{
		{ID: "a1", Date: "2024-03-06", Status: appointments.StatusPending},
	}}
	c := NewController(f, nil, nil).WithClock(fixedClock("2024-03-06"))

	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, c.ViewModel().Appointments, 1)

	f.err = errors.New("store unreachable")
	err := c.Refresh(context.Background())
	require.Error(t, err)

	vm := c.ViewModel()
	assert.Len(t, vm.Appointments, 1, "last-known-good data stays")
	assert.Equal(t, "a1", vm.Appointments[0].ID)
	assert.Contains(t, vm.Error, "store unreachable")
	assert.False(t, vm.Loading, "loading indicator must clear on failure")

	// A later successful refresh clears the error state.
	f.err = nil
	require.NoError(t, c.Refresh(context.Background()))
	assert.Empty(t, c.ViewModel().Error)
}

func TestSetViewDayUsesDateEquals(t *testing.T) {
	f := &immediateFetcher{}
	c := NewController(f, nil, nil).WithClock(fixedClock("2024-03-06"))

	require.NoError(t, c.SetView(context.Background(), "2024-03-04", GranularityDay, FilterAll))
	assert.Equal(t, "2024-03-04", f.filter.DateEquals)
	assert.Empty(t, f.filter.DateFrom)
}

func TestSetViewWeekUsesRangeAndBadDateFallsBackToToday(t *testing.T) {
	f := &immediateFetcher{}
	c := NewController(f, nil, nil).WithClock(fixedClock("2024-03-06"))

	require.NoError(t, c.SetView(context.Background(), "whenever", GranularityWeek, FilterActive))
	assert.Equal(t, "2024-03-04", f.filter.DateFrom, "week of today (Wed 2024-03-06)")
	assert.Equal(t, "2024-03-10", f.filter.DateTo)

	vm := c.ViewModel()
	assert.Equal(t, "2024-03-06", vm.ReferenceDate)
	assert.Len(t, vm.DayCounts, 7)
}

func TestSetViewMonthFetchesPaddedGrid(t *testing.T) {
	f := &immediateFetcher{}
	c := NewController(f, nil, nil).WithClock(fixedClock("2024-03-06"))

	require.NoError(t, c.SetView(context.Background(), "2024-03-15", GranularityMonth, FilterActive))
	assert.Equal(t, "2024-02-26", f.filter.DateFrom, "Monday before March 1st")
	assert.Equal(t, "2024-03-31", f.filter.DateTo, "Sunday closing the last row")
}

func TestMoveAdvancesWindowAndRefetches(t *testing.T) {
	f := &immediateFetcher{}
	c := NewController(f, nil, nil).WithClock(fixedClock("2024-03-06"))
	require.NoError(t, c.SetView(context.Background(), "2024-03-06", GranularityWeek, FilterActive))

	require.NoError(t, c.Move(context.Background(), 1))
	assert.Equal(t, "2024-03-11", f.filter.DateFrom)
	assert.Equal(t, "2024-03-17", f.filter.DateTo)
	assert.Equal(t, 2, f.calls)
}

func TestChangeStatusAppliesOnlyAfterConfirmation(t *testing.T) {
	f := &immediateFetcher{appts: []appointments.Appointment{
		{ID: "a1", Date: "2024-03-06", Status: appointments.StatusPending},
	}}
	w := &recordingWriter{}
	c := NewController(f, w, nil).WithClock(fixedClock("2024-03-06"))
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.ChangeStatus(context.Background(), "a1", appointments.StatusConfirmed))
	vm := c.ViewModel()
	require.Len(t, vm.Appointments, 1)
	assert.Equal(t, appointments.StatusConfirmed, vm.Appointments[0].Status)
	assert.Equal(t, "a1", w.lastID)
}

func TestChangeStatusFailureLeavesLocalStateUntouched(t *testing.T) {
	f := &immediateFetcher{appts: []appointments.Appointment{
		{ID: "a1", Date: "2024-03-06", Status: appointments.StatusPending},
	}}
	w := &recordingWriter{err: errors.New("write refused")}
	c := NewController(f, w, nil).WithClock(fixedClock("2024-03-06"))
	require.NoError(t, c.Refresh(context.Background()))

	err := c.ChangeStatus(context.Background(), "a1", appointments.StatusDone)
	require.Error(t, err)

	vm := c.ViewModel()
	assert.Equal(t, appointments.StatusPending, vm.Appointments[0].Status)
}
