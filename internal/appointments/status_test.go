package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusGroups(t *testing.T) {
	assert.True(t, StatusPending.InGroup(GroupActive))
	assert.True(t, StatusConfirmed.InGroup(GroupActive))
	assert.True(t, StatusDone.InGroup(GroupArchived))
	assert.True(t, StatusCancelled.InGroup(GroupArchived))

	assert.False(t, StatusDone.InGroup(GroupActive))
	assert.False(t, StatusPending.InGroup(GroupArchived))
}

func TestUnknownStatusBelongsToNeitherGroup(t *testing.T) {
	weird := Status("no-show")
	assert.False(t, weird.InGroup(GroupActive))
	assert.False(t, weird.InGroup(GroupArchived))
	assert.Equal(t, StatusPending, weird.Display())
	// The raw value stays intact for storage.
	assert.Equal(t, Status("no-show"), weird)
}

func TestFilterByGroupPartitionsExactly(t *testing.T) {
	appts := []Appointment{
		{ID: "1", Status: StatusPending},
		{ID: "2", Status: StatusDone},
		{ID: "3", Status: StatusConfirmed},
		{ID: "4", Status: Status("no-show")},
		{ID: "5", Status: StatusCancelled},
	}

	active := FilterByGroup(appts, GroupActive)
	archived := FilterByGroup(appts, GroupArchived)

	ids := func(list []Appointment) []string {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.ID)
		}
		return out
	}

	// Relative order preserved within each group.
	assert.Equal(t, []string{"1", "3"}, ids(active))
	assert.Equal(t, []string{"2", "5"}, ids(archived))

	// Union of both groups recovers everything except the unknown status,
	// which belongs to neither.
	seen := map[string]bool{}
	for _, id := range append(ids(active), ids(archived)...) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 4)
	assert.False(t, seen["4"], "unknown status must appear in neither group")
}

func TestTransitionReturnsCopy(t *testing.T) {
	orig := Appointment{ID: "a1", Status: StatusPending}
	updated := Transition(orig, StatusConfirmed)

	assert.Equal(t, StatusConfirmed, updated.Status)
	assert.Equal(t, StatusPending, orig.Status, "Transition must not mutate its input")
}

func TestTransitionIdempotent(t *testing.T) {
	a := Appointment{ID: "a1", Status: StatusPending}
	once := Transition(a, StatusConfirmed)
	twice := Transition(once, StatusConfirmed)
	assert.Equal(t, once, twice)
}

func TestDayParsesStoredDate(t *testing.T) {
	a := Appointment{Date: "2024-03-04"}
	d, ok := a.Day()
	assert.True(t, ok)
	assert.Equal(t, "2024-03-04", d.Format(DateLayout))

	_, ok = Appointment{Date: "not-a-date"}.Day()
	assert.False(t, ok)
}
