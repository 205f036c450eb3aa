package appointments

// Status is the lifecycle state of an appointment. Any status may move to
// any other: the business corrects mistakes freely, so the machine enforces
// no transition table.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// Statuses lists the four known states in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusDone, StatusCancelled}

// Known reports whether s is one of the four enumerated statuses. Unknown
// values coming out of the store are preserved verbatim, shown as pending,
// and belong to neither filter group.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Display returns the status to render: unknown values display as pending
// without being rewritten in storage.
func (s Status) Display() Status {
	if s.Known() {
		return s
	}
	return StatusPending
}

// Group classifies statuses for filtering.
type Group string

const (
	// GroupActive holds appointments not yet concluded.
	GroupActive Group = "active"
	// GroupArchived holds concluded appointments. Note that only "done"
	// sets the store's is_archived flag; "cancelled" filters as archived
	// without it. See Store.UpdateStatus.
	GroupArchived Group = "archived"
)

// InGroup reports whether s belongs to g. Unknown statuses belong to no
// group.
func (s Status) InGroup(g Group) bool {
	switch g {
	case GroupActive:
		return s == StatusPending || s == StatusConfirmed
	case GroupArchived:
		return s == StatusDone || s == StatusCancelled
	}
	return false
}

// Transition returns a copy of a with its status replaced. It never mutates
// its input; persisting the change is the caller's job.
func Transition(a Appointment, to Status) Appointment {
	a.Status = to
	return a
}

// FilterByGroup returns the appointments whose status belongs to g,
// preserving relative order.
func FilterByGroup(appts []Appointment, g Group) []Appointment {
	var out []Appointment
	for _, a := range appts {
		if a.Status.InGroup(g) {
			out = append(out, a)
		}
	}
	return out
}
