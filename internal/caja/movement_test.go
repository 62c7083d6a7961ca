package caja

import (
	"testing"
	"time"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
)

func sampleReservation(price int64) booking.Reservation {
	return booking.Reservation{
		ID:        "res-1",
		CourtID:   "c1",
		CourtName: "Cancha 1",
		Date:      "2026-09-01",
		StartTime: "15:00",
		EndTime:   "16:30",
		UserName:  "Ana",
		Status:    booking.StatusConfirmed,
		Price:     price,
	}
}

func TestProjectCreate(t *testing.T) {
	when := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	event := booking.LifecycleEvent{Action: booking.EventCreate, Reservation: sampleReservation(8000), OccurredAt: when}

	m, ok := Project(event)
	if !ok {
		t.Fatal("create event must project a movement")
	}
	if m.Type != TypeReserva {
		t.Errorf("type = %q, want Reserva", m.Type)
	}
	if m.Amount != 8000 || m.Profit != 8000 || m.Cost != 0 {
		t.Errorf("amount/profit/cost = %d/%d/%d, want 8000/8000/0", m.Amount, m.Profit, m.Cost)
	}
	if m.Category != CategoryReserva {
		t.Errorf("category = %q, want %q", m.Category, CategoryReserva)
	}
	if m.ReservationID != "res-1" {
		t.Errorf("reservation id = %q, want res-1", m.ReservationID)
	}
	if !m.Date.Equal(when) {
		t.Errorf("date = %v, want %v", m.Date, when)
	}
}

func TestProjectCancel(t *testing.T) {
	event := booking.LifecycleEvent{Action: booking.EventCancel, Reservation: sampleReservation(8000)}

	m, ok := Project(event)
	if !ok {
		t.Fatal("cancel event must project a movement")
	}
	if m.Type != TypeCancelacion {
		t.Errorf("type = %q, want Cancelación", m.Type)
	}
	if m.Amount != -8000 || m.Profit != -8000 {
		t.Errorf("amount/profit = %d/%d, want -8000/-8000", m.Amount, m.Profit)
	}
	if m.Category != CategoryCancelacion {
		t.Errorf("category = %q, want %q", m.Category, CategoryCancelacion)
	}
}

func TestProjectRestore(t *testing.T) {
	event := booking.LifecycleEvent{Action: booking.EventRestore, Reservation: sampleReservation(5000)}

	m, ok := Project(event)
	if !ok {
		t.Fatal("restore event must project a movement")
	}
	if m.Type != TypeReserva || m.Amount != 5000 {
		t.Errorf("restore projected %q/%d, want Reserva/5000", m.Type, m.Amount)
	}
}

func TestProjectUpdate(t *testing.T) {
	t.Run("positive delta", func(t *testing.T) {
		event := booking.LifecycleEvent{Action: booking.EventUpdate, Reservation: sampleReservation(8000), PriceDelta: 3000}
		m, ok := Project(event)
		if !ok {
			t.Fatal("priced update must project a movement")
		}
		if m.Type != TypeReserva || m.Amount != 3000 || m.Profit != 3000 {
			t.Errorf("got %q/%d/%d, want Reserva/3000/3000", m.Type, m.Amount, m.Profit)
		}
		if m.Category != CategoryAjusteReserva {
			t.Errorf("category = %q, want %q", m.Category, CategoryAjusteReserva)
		}
	})

	t.Run("negative delta", func(t *testing.T) {
		event := booking.LifecycleEvent{Action: booking.EventUpdate, Reservation: sampleReservation(5000), PriceDelta: -3000}
		m, ok := Project(event)
		if !ok {
			t.Fatal("priced update must project a movement")
		}
		if m.Type != TypeCancelacion || m.Amount != -3000 {
			t.Errorf("got %q/%d, want Cancelación/-3000", m.Type, m.Amount)
		}
	})

	t.Run("zero delta projects nothing", func(t *testing.T) {
		event := booking.LifecycleEvent{Action: booking.EventUpdate, Reservation: sampleReservation(5000)}
		if _, ok := Project(event); ok {
			t.Fatal("zero-delta update must not project a movement")
		}
	})
}

func TestSaleMovement(t *testing.T) {
	product := Product{ID: "p1", Name: "Gatorade", Category: ProductArticulo, PurchasePrice: 800, Price: 1500}
	when := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	m := SaleMovement(product, 3, 4500, "Efectivo", when)
	if m.Type != TypeVenta {
		t.Errorf("type = %q, want Venta", m.Type)
	}
	if m.Amount != 4500 || m.Cost != 2400 || m.Profit != 2100 {
		t.Errorf("amount/cost/profit = %d/%d/%d, want 4500/2400/2100", m.Amount, m.Cost, m.Profit)
	}
	if m.Category != CategoryVentaProducto {
		t.Errorf("category = %q, want %q", m.Category, CategoryVentaProducto)
	}
}
