// Package caja is the cash-register side of the engine: it projects
// reservation lifecycle events into append-only ledger movements and folds
// movements into revenue reports. Movements are history; a correction is a
// new movement, never an edit.
package caja

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
)

// MovementType classifies a ledger entry. The names are the operator-facing
// Spanish labels used throughout the cash register.
type MovementType string

const (
	TypeVenta       MovementType = "Venta"
	TypeReserva     MovementType = "Reserva"
	TypeGasto       MovementType = "Gasto"
	TypeCancelacion MovementType = "Cancelación"
)

// Categories group movements for report filtering.
const (
	CategoryReserva       = "Reserva Cancha"
	CategoryCancelacion   = "Cancelación Reserva"
	CategoryAjusteReserva = "Ajuste Reserva"
	CategoryVentaProducto = "Venta Producto"
	CategoryGasto         = "Gasto Varios"
)

// Movement is one append-only ledger entry. Profit is always amount minus
// cost. ReservationID links back to the reservation that produced the entry
// when there is one.
type Movement struct {
	ID            string       `json:"id" db:"id"`
	Type          MovementType `json:"type" db:"type"`
	Description   string       `json:"description" db:"description"`
	Amount        int64        `json:"amount" db:"amount"`
	Cost          int64        `json:"cost" db:"cost"`
	Profit        int64        `json:"profit" db:"profit"`
	Date          time.Time    `json:"date" db:"date"`
	Category      string       `json:"category" db:"category"`
	PaymentMethod string       `json:"paymentMethod,omitempty" db:"payment_method"`
	ReservationID string       `json:"reservationId,omitempty" db:"reservation_id"`
}

// Project maps one lifecycle event to its ledger movement. It returns
// ok=false for an update whose price did not change, the only lifecycle
// transition without revenue impact.
func Project(event booking.LifecycleEvent) (Movement, bool) {
	r := event.Reservation
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	switch event.Action {
	case booking.EventCreate, booking.EventRestore:
		return Movement{
			ID:            uuid.New().String(),
			Type:          TypeReserva,
			Description:   fmt.Sprintf("Reserva %s - %s (%s-%s)", r.CourtName, r.UserName, r.StartTime, r.EndTime),
			Amount:        r.Price,
			Profit:        r.Price,
			Date:          occurred,
			Category:      CategoryReserva,
			PaymentMethod: "Pendiente",
			ReservationID: r.ID,
		}, true

	case booking.EventCancel:
		return Movement{
			ID:            uuid.New().String(),
			Type:          TypeCancelacion,
			Description:   fmt.Sprintf("Cancelación Reserva %s - %s", r.CourtName, r.UserName),
			Amount:        -r.Price,
			Profit:        -r.Price,
			Date:          occurred,
			Category:      CategoryCancelacion,
			ReservationID: r.ID,
		}, true

	case booking.EventUpdate:
		if event.PriceDelta == 0 {
			return Movement{}, false
		}
		movementType := TypeReserva
		direction := "Aumento"
		if event.PriceDelta < 0 {
			movementType = TypeCancelacion
			direction = "Reducción"
		}
		return Movement{
			ID:            uuid.New().String(),
			Type:          movementType,
			Description:   fmt.Sprintf("Ajuste Reserva %s - %s", r.CourtName, direction),
			Amount:        event.PriceDelta,
			Profit:        event.PriceDelta,
			Date:          occurred,
			Category:      CategoryAjusteReserva,
			ReservationID: r.ID,
		}, true
	}
	return Movement{}, false
}
