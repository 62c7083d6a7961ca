package caja

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 12, 0, 0, 0, time.UTC)
}

func TestBuildReport(t *testing.T) {
	movements := []Movement{
		{Type: TypeReserva, Amount: 15000, Profit: 15000, Date: day(1)},
		{Type: TypeVenta, Amount: 4500, Cost: 2400, Profit: 2100, Date: day(2)},
		{Type: TypeCancelacion, Amount: -15000, Profit: -15000, Date: day(3)},
		{Type: TypeGasto, Amount: -2000, Profit: -2000, Date: day(3)},
		{Type: TypeReserva, Amount: 8000, Profit: 8000, Date: day(4)},
	}

	report := BuildReport(movements, day(5))

	if report.TotalSales != 4500 {
		t.Errorf("total sales = %d, want 4500", report.TotalSales)
	}
	if report.TotalReservations != 23000 {
		t.Errorf("total reservations = %d, want 23000", report.TotalReservations)
	}
	if report.TotalRevenue != 10500 {
		t.Errorf("total revenue = %d, want 10500", report.TotalRevenue)
	}
	if report.TotalCost != 2400 {
		t.Errorf("total cost = %d, want 2400", report.TotalCost)
	}
	if report.NetProfit != 8100 {
		t.Errorf("net profit = %d, want 8100", report.NetProfit)
	}

	// Newest first for display.
	if len(report.Movements) != 5 {
		t.Fatalf("movement count = %d, want 5", len(report.Movements))
	}
	if !report.Movements[0].Date.Equal(day(4)) {
		t.Errorf("first movement date = %v, want %v", report.Movements[0].Date, day(4))
	}
	if !report.Movements[len(report.Movements)-1].Date.Equal(day(1)) {
		t.Errorf("last movement date = %v, want %v", report.Movements[len(report.Movements)-1].Date, day(1))
	}
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, day(1))
	if report.TotalRevenue != 0 || report.NetProfit != 0 {
		t.Fatal("empty report must fold to zero")
	}
	if len(report.Movements) != 0 {
		t.Fatalf("movement count = %d, want 0", len(report.Movements))
	}
}

func TestFilterByDateRange(t *testing.T) {
	movements := []Movement{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(3)},
		{ID: "c", Date: day(5)},
	}

	got := FilterByDateRange(movements, day(2), day(4))
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected only movement b, got %+v", got)
	}

	// Zero bounds leave the side open.
	if got := FilterByDateRange(movements, time.Time{}, day(3)); len(got) != 2 {
		t.Fatalf("open lower bound: expected 2, got %d", len(got))
	}
	if got := FilterByDateRange(movements, day(3), time.Time{}); len(got) != 2 {
		t.Fatalf("open upper bound: expected 2, got %d", len(got))
	}
}
