package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/caja"
)

const reservationColumns = `
	id, court_id, court_name, date, start_time, end_time,
	user_name, user_contact, user_email, status, price, created_at, updated_at`

// GetReservation loads one reservation by id.
func (s *Store) GetReservation(ctx context.Context, id string) (booking.Reservation, error) {
	var r booking.Reservation
	err := s.db.GetContext(ctx, &r, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Reservation{}, booking.ErrNotFound
	}
	if err != nil {
		return booking.Reservation{}, fmt.Errorf("get reservation %s: %w", id, err)
	}
	return r, nil
}

// ListByCourtDate returns every reservation (any status) for one court and
// date, ordered by start time. The overlap checker filters cancelled rows
// itself.
func (s *Store) ListByCourtDate(ctx context.Context, courtID, date string) ([]booking.Reservation, error) {
	var reservations []booking.Reservation
	err := s.db.SelectContext(ctx, &reservations, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE court_id = ? AND date = ?
		ORDER BY start_time`, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("list reservations for court %s on %s: %w", courtID, date, err)
	}
	return reservations, nil
}

// ListByDate returns a day's reservations across courts. Cancelled rows are
// included only when requested.
func (s *Store) ListByDate(ctx context.Context, date string, includeCancelled bool) ([]booking.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE date = ? AND status != 'Cancelled'
		ORDER BY start_time`
	if includeCancelled {
		query = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE date = ?
		ORDER BY start_time`
	}

	var reservations []booking.Reservation
	if err := s.db.SelectContext(ctx, &reservations, query, date); err != nil {
		return nil, fmt.Errorf("list reservations for %s: %w", date, err)
	}
	return reservations, nil
}

// ListAll returns every reservation ordered by date and start time.
func (s *Store) ListAll(ctx context.Context) ([]booking.Reservation, error) {
	var reservations []booking.Reservation
	err := s.db.SelectContext(ctx, &reservations, `
		SELECT `+reservationColumns+`
		FROM reservations
		ORDER BY date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

// CountActiveByCourt counts non-cancelled reservations on a court. The
// pricing guard runs on this number.
func (s *Store) CountActiveByCourt(ctx context.Context, courtID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM reservations
		WHERE court_id = ? AND status != 'Cancelled'`, courtID)
	if err != nil {
		return 0, fmt.Errorf("count active reservations for %s: %w", courtID, err)
	}
	return count, nil
}

// CreateWithEvent inserts the reservation and its projected ledger movement
// in one transaction; a storage failure leaves neither behind.
func (s *Store) CreateWithEvent(ctx context.Context, r booking.Reservation, ev booking.LifecycleEvent) error {
	return s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO reservations (`+reservationColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.CourtID, r.CourtName, r.Date, r.StartTime, r.EndTime,
			r.UserName, r.UserContact, r.UserEmail, r.Status, r.Price, r.CreatedAt, r.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		return insertProjectedMovement(ctx, tx, ev)
	})
}

// UpdateWithEvent updates the reservation row and, when the transition has
// revenue impact, appends the projected movement in the same transaction.
func (s *Store) UpdateWithEvent(ctx context.Context, r booking.Reservation, ev *booking.LifecycleEvent) error {
	return s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE reservations
			SET court_id = ?, court_name = ?, date = ?, start_time = ?, end_time = ?,
			    user_name = ?, user_contact = ?, user_email = ?, status = ?, price = ?, updated_at = ?
			WHERE id = ?`,
			r.CourtID, r.CourtName, r.Date, r.StartTime, r.EndTime,
			r.UserName, r.UserContact, r.UserEmail, r.Status, r.Price, r.UpdatedAt, r.ID,
		)
		if err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		return insertProjectedMovement(ctx, tx, *ev)
	})
}

func insertProjectedMovement(ctx context.Context, tx *sqlx.Tx, ev booking.LifecycleEvent) error {
	movement, ok := caja.Project(ev)
	if !ok {
		return nil
	}
	return insertMovement(ctx, tx, movement)
}
