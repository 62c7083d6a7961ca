// Package email sends booking confirmation and cancellation messages
// through SES. Delivery is best-effort: failures are logged and never
// propagate into the booking commit.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
)

const sendTimeout = 10 * time.Second

// Notifier implements booking.Notifier on top of an EmailSender.
type Notifier struct {
	sender EmailSender
}

func NewNotifier(sender EmailSender) *Notifier {
	return &Notifier{sender: sender}
}

// ReservationConfirmed mails a booking confirmation when the reservation
// has an email address.
func (n *Notifier) ReservationConfirmed(ctx context.Context, r booking.Reservation) {
	subject := fmt.Sprintf("Reserva confirmada - %s", r.CourtName)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu reserva está confirmada.\n\nCancha: %s\nFecha: %s\nHorario: %s a %s\nPrecio: $%d\n\n¡Te esperamos!",
		r.UserName, r.CourtName, r.Date, r.StartTime, r.EndTime, r.Price,
	)
	n.deliver(ctx, r, subject, body)
}

// ReservationCancelled mails a cancellation notice.
func (n *Notifier) ReservationCancelled(ctx context.Context, r booking.Reservation) {
	subject := fmt.Sprintf("Reserva cancelada - %s", r.CourtName)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu reserva del %s de %s a %s en %s fue cancelada.",
		r.UserName, r.Date, r.StartTime, r.EndTime, r.CourtName,
	)
	n.deliver(ctx, r, subject, body)
}

func (n *Notifier) deliver(ctx context.Context, r booking.Reservation, subject, body string) {
	if n == nil || n.sender == nil || r.UserEmail == "" {
		return
	}
	logger := log.Ctx(ctx).With().
		Str("component", "email_notifier").
		Str("reservation_id", r.ID).
		Logger()

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := n.sender.Send(sendCtx, r.UserEmail, subject, body); err != nil {
			logger.Warn().Err(err).Msg("Failed to deliver reservation email")
		}
	}()
}
