package caja

import (
	"sort"
	"time"
)

// Report is the aggregated view of a movement sequence. It is computed by
// folding; past movements are never rewritten.
type Report struct {
	TotalSales        int64      `json:"totalSales"`
	TotalReservations int64      `json:"totalReservations"`
	TotalRevenue      int64      `json:"totalRevenue"`
	TotalCost         int64      `json:"totalCost"`
	NetProfit         int64      `json:"netProfit"`
	Movements         []Movement `json:"movements"`
	GeneratedAt       time.Time  `json:"generatedAt"`
}

// BuildReport folds movements into totals. Movements are returned newest
// first for display.
func BuildReport(movements []Movement, generatedAt time.Time) Report {
	report := Report{
		Movements:   sortNewestFirst(movements),
		GeneratedAt: generatedAt,
	}
	for _, m := range movements {
		switch m.Type {
		case TypeVenta:
			report.TotalSales += m.Amount
		case TypeReserva:
			report.TotalReservations += m.Amount
		}
		report.TotalRevenue += m.Amount
		report.TotalCost += m.Cost
		report.NetProfit += m.Profit
	}
	return report
}

// FilterByDateRange keeps movements with from <= date <= to. A zero bound
// leaves that side open.
func FilterByDateRange(movements []Movement, from, to time.Time) []Movement {
	filtered := make([]Movement, 0, len(movements))
	for _, m := range movements {
		if !from.IsZero() && m.Date.Before(from) {
			continue
		}
		if !to.IsZero() && m.Date.After(to) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

func sortNewestFirst(movements []Movement) []Movement {
	sorted := make([]Movement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
