package search

import (
	"strconv"
	"strings"
)

// ParseClockDuration converts a "minutes:seconds" string such as "3:45"
// into a duration in seconds.
//
// Only the two-part form is understood. Inputs with a different number
// of parts, including hour-long "1:02:30" clocks, and inputs with
// non-numeric parts report ok=false.
func ParseClockDuration(s string) (seconds uint64, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}

	minutes, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, false
	}
	secs, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}

	return minutes*60 + secs, true
}
