package booking

import (
	"fmt"
	"sort"
)

// ResolvePrice returns the price that applies to a booking starting at
// startTime ("HH:mm") on the given court. Resolution order:
//
//  1. no pricing configured: the court's base price
//  2. single-price mode: the flat price, regardless of start time
//  3. intervals: the first interval (ascending by end time) whose end is
//     strictly after the start time; a start at or past every interval's end
//     falls back to the last interval's price
//  4. empty interval set: the court's base price
//
// The function is pure so the slot listing, the booking commit and the edit
// recalculation all resolve identically from the same configuration.
func ResolvePrice(court Court, startTime string) int64 {
	pricing := court.Pricing
	if pricing == nil {
		return court.Price
	}
	if pricing.IsSinglePrice && pricing.SinglePrice != nil {
		return *pricing.SinglePrice
	}
	if len(pricing.Intervals) == 0 {
		return court.Price
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return court.Price
	}

	// Stored order is not trusted.
	intervals := make([]PriceInterval, len(pricing.Intervals))
	copy(intervals, pricing.Intervals)
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervalEnd(intervals[i]) < intervalEnd(intervals[j])
	})

	for _, interval := range intervals {
		if start < intervalEnd(interval) {
			return interval.Price
		}
	}
	return intervals[len(intervals)-1].Price
}

func intervalEnd(interval PriceInterval) int {
	end, err := ParseDayBoundary(interval.EndTime)
	if err != nil {
		return 0
	}
	return end
}

// ParseDayBoundary parses an "HH:mm" value that may legally be "24:00",
// the exclusive end of the day used by closing times and price intervals.
func ParseDayBoundary(value string) (int, error) {
	if value == "24:00" {
		return 24 * 60, nil
	}
	minutes, err := ParseClock(value)
	if err != nil {
		return 0, fmt.Errorf("invalid day boundary: %w", err)
	}
	return minutes, nil
}
