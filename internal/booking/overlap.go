package booking

// Candidate is a requested [StartTime, EndTime) interval on one court and
// date, checked against the existing reservation set before committing.
type Candidate struct {
	CourtID   string
	Date      string
	StartTime string
	EndTime   string
}

// IsAvailable reports whether the candidate interval conflicts with no
// active reservation. Cancelled reservations never block, which is also how
// a cancelled slot becomes bookable again. excludeID skips the reservation
// being edited so it cannot collide with itself.
//
// Intervals are half-open: two bookings touching end-to-start do not
// overlap. A stored reservation whose end time is corrupt (at or before its
// start) is defended as a 60-minute booking; treating it as zero-length
// would let anything double-book on top of it.
func IsAvailable(candidate Candidate, excludeID string, existing []Reservation) bool {
	start, err := ParseClock(candidate.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseDayBoundary(candidate.EndTime)
	if err != nil || end <= start {
		return false
	}

	for _, r := range existing {
		if r.CourtID != candidate.CourtID || r.Date != candidate.Date {
			continue
		}
		if r.Status == StatusCancelled {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}

		rStart, err := ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		rEnd, err := ParseDayBoundary(r.EndTime)
		if err != nil || rEnd <= rStart {
			rEnd = rStart + DefaultDurationMinutes
		}

		if start < rEnd && end > rStart {
			return false
		}
	}
	return true
}
