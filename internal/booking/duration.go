package booking

import "strings"

// DefaultDurationMinutes applies to any sport without an explicit entry in
// the duration table, and to stored reservations with a corrupt end time.
const DefaultDurationMinutes = 60

// SportDurations maps a normalized sport category to the reservation
// duration in minutes. The table is configuration, not code: it replaces the
// old habit of substring-matching the court's free-text type to decide
// between 90-minute padel bookings and 60-minute everything-else.
type SportDurations map[string]int

// DefaultSportDurations reproduces the historical rule: padel-class courts
// book 90 minutes, every other sport books an hour.
func DefaultSportDurations() SportDurations {
	return SportDurations{"padel": 90}
}

// DurationFor returns the booking duration for a court type. Matching is
// case-insensitive on the normalized category; a missing entry falls back to
// DefaultDurationMinutes.
func (d SportDurations) DurationFor(courtType string) int {
	key := normalizeSport(courtType)
	for category, minutes := range d {
		if minutes <= 0 {
			continue
		}
		if strings.Contains(key, normalizeSport(category)) {
			return minutes
		}
	}
	return DefaultDurationMinutes
}

func normalizeSport(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
