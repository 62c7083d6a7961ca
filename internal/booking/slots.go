package booking

// TimeSlot is a generated candidate start time for a booking. Slots are
// ephemeral values derived from operating hours; they are never persisted.
type TimeSlot struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
}

// GenerateSlots derives the ordered sequence of bookable start times for one
// day. A closed day, a zero granularity or an unparsable window yields no
// slots rather than an error. The last slot's start is strictly before the
// closing time; whether the booking that starts there still fits before
// close is decided at booking time.
func GenerateSlots(hours DayHours, granularityMinutes int) []TimeSlot {
	if !hours.IsOpen || hours.OpenTime == "" || hours.CloseTime == "" {
		return nil
	}
	if granularityMinutes <= 0 {
		return nil
	}

	open, err := ParseClock(hours.OpenTime)
	if err != nil {
		return nil
	}
	closing, err := ParseDayBoundary(hours.CloseTime)
	if err != nil {
		return nil
	}

	var slots []TimeSlot
	for current := open; current < closing; current += granularityMinutes {
		slots = append(slots, TimeSlot{
			Hour:  current / 60,
			Label: FormatClock(current),
		})
	}
	return slots
}
