package appointments

import (
	"strconv"
	"strings"
)

// ParseClock converts an HH:MM[:SS] time-of-day value into minutes since
// midnight. Hours may be one or two digits; seconds are ignored, matching
// how the booking data stores times. ok is false for empty or malformed
// values.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
