// Package booking implements the reservation scheduling and pricing engine:
// slot generation from operating hours, time-of-day interval pricing,
// overlap detection and the reservation lifecycle.
package booking

import (
	"fmt"
	"regexp"
)

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ParseClock converts an "HH:mm" string to minutes since midnight.
func ParseClock(value string) (int, error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", value)
	}
	hours := int(m[1][len(m[1])-1] - '0')
	if len(m[1]) == 2 {
		hours += int(m[1][0]-'0') * 10
	}
	minutes := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	return hours*60 + minutes, nil
}

// FormatClock converts minutes since midnight back to "HH:mm". Values past
// midnight wrap around so 24:30 renders as "00:30".
func FormatClock(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
