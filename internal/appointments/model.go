package appointments

import (
	"time"

	"github.com/bajo3/Emme-Client/internal/catalog"
)

// DateLayout is the wire format for calendar dates. All date arithmetic in
// the engine is timezone-naive: a date names a local calendar day, nothing
// more.
const DateLayout = "2006-01-02"

// Appointment is a scheduled service instance. The store assigns the ID;
// the engine only ever mutates Status (via Transition plus a store write).
type Appointment struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	StartTime   string          `json:"start_time,omitempty"`
	EndTime     string          `json:"end_time,omitempty"`
	Status      Status          `json:"status"`
	ServiceName string          `json:"service_name,omitempty"`
	Amount      float64         `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
	Client      *catalog.Client `json:"client,omitempty"`
}

// Day parses the appointment's calendar date. ok is false when the stored
// value is not a valid date; callers bucketing by day must skip those rows
// instead of failing.
func (a Appointment) Day() (time.Time, bool) {
	d, err := time.Parse(DateLayout, a.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
