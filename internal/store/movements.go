package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AgustinBaezRep/reservar-engine/internal/caja"
)

const movementColumns = `
	id, type, description, amount, cost, profit, date, category, payment_method, reservation_id`

// AppendMovement records one ledger movement. Movements are append-only;
// there is deliberately no update or delete.
func (s *Store) AppendMovement(ctx context.Context, m caja.Movement) error {
	return s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		return insertMovement(ctx, tx, m)
	})
}

// ListMovements returns movements within [from, to], both optional, newest
// first.
func (s *Store) ListMovements(ctx context.Context, from, to time.Time) ([]caja.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	var args []any
	switch {
	case !from.IsZero() && !to.IsZero():
		query += ` WHERE date >= ? AND date <= ?`
		args = append(args, from, to)
	case !from.IsZero():
		query += ` WHERE date >= ?`
		args = append(args, from)
	case !to.IsZero():
		query += ` WHERE date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY date DESC`

	var movements []caja.Movement
	if err := s.db.SelectContext(ctx, &movements, query, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}

// ListMovementsByReservation returns the ledger history linked to one
// reservation, oldest first.
func (s *Store) ListMovementsByReservation(ctx context.Context, reservationID string) ([]caja.Movement, error) {
	var movements []caja.Movement
	err := s.db.SelectContext(ctx, &movements, `
		SELECT `+movementColumns+`
		FROM movements WHERE reservation_id = ?
		ORDER BY date`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list movements for reservation %s: %w", reservationID, err)
	}
	return movements, nil
}

func insertMovement(ctx context.Context, tx *sqlx.Tx, m caja.Movement) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO movements (`+movementColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Type, m.Description, m.Amount, m.Cost, m.Profit,
		m.Date, m.Category, m.PaymentMethod, m.ReservationID,
	); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}
