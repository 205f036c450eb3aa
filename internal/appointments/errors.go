package appointments

import "errors"

var (
	// ErrNotFound is returned when no appointment matches the given ID.
	ErrNotFound = errors.New("appointments: not found")
	// ErrUnknownStatus is returned when a caller asks for a transition to a
	// status outside the four enumerated values. Unknown statuses already in
	// the data are tolerated; new ones are not minted through the API.
	ErrUnknownStatus = errors.New("appointments: unknown status")
)
