package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
)

// CreateCourt inserts a new court.
func (s *Store) CreateCourt(ctx context.Context, court booking.Court) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courts (id, name, type, base_price, is_active)
		VALUES (?, ?, ?, ?, ?)`,
		court.ID, court.Name, court.Type, court.Price, court.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert court: %w", err)
	}
	return nil
}

// UpdateCourt updates a court's editable fields.
func (s *Store) UpdateCourt(ctx context.Context, court booking.Court) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE courts
		SET name = ?, type = ?, base_price = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		court.Name, court.Type, court.Price, court.IsActive, court.ID,
	)
	if err != nil {
		return fmt.Errorf("update court: %w", err)
	}
	return requireRow(result)
}

// SetCourtActive toggles a court's active flag. Deactivation never touches
// existing reservations.
func (s *Store) SetCourtActive(ctx context.Context, id string, active bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE courts SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("set court active: %w", err)
	}
	return requireRow(result)
}

// GetCourt loads a court with its pricing configuration, if any.
func (s *Store) GetCourt(ctx context.Context, id string) (booking.Court, error) {
	var court booking.Court
	err := s.db.GetContext(ctx, &court, `
		SELECT id, name, type, base_price, is_active FROM courts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Court{}, booking.ErrNotFound
	}
	if err != nil {
		return booking.Court{}, fmt.Errorf("get court %s: %w", id, err)
	}

	pricing, err := s.loadPricing(ctx, id)
	if err != nil {
		return booking.Court{}, err
	}
	court.Pricing = pricing
	return court, nil
}

// ListCourts returns all courts, optionally only the active ones, each with
// its pricing configuration.
func (s *Store) ListCourts(ctx context.Context, onlyActive bool) ([]booking.Court, error) {
	query := `SELECT id, name, type, base_price, is_active FROM courts ORDER BY name`
	if onlyActive {
		query = `SELECT id, name, type, base_price, is_active FROM courts WHERE is_active = 1 ORDER BY name`
	}

	var courts []booking.Court
	if err := s.db.SelectContext(ctx, &courts, query); err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	for i := range courts {
		pricing, err := s.loadPricing(ctx, courts[i].ID)
		if err != nil {
			return nil, err
		}
		courts[i].Pricing = pricing
	}
	return courts, nil
}

// UpdateCourtPricing replaces a court's pricing configuration. The caller is
// responsible for the active-reservation guard; the store only persists.
func (s *Store) UpdateCourtPricing(ctx context.Context, pricing booking.Pricing) error {
	return s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM courts WHERE id = ?`, pricing.CourtID)
		if err != nil {
			return fmt.Errorf("check court %s: %w", pricing.CourtID, err)
		}
		if exists == 0 {
			return booking.ErrNotFound
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO court_pricing (court_id, is_single_price, single_price, deposit)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(court_id) DO UPDATE SET
				is_single_price = excluded.is_single_price,
				single_price = excluded.single_price,
				deposit = excluded.deposit`,
			pricing.CourtID, pricing.IsSinglePrice, pricing.SinglePrice, pricing.Deposit,
		)
		if err != nil {
			return fmt.Errorf("upsert pricing: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM court_pricing_intervals WHERE court_id = ?`, pricing.CourtID); err != nil {
			return fmt.Errorf("clear pricing intervals: %w", err)
		}
		for _, interval := range pricing.Intervals {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO court_pricing_intervals (court_id, end_time, price)
				VALUES (?, ?, ?)`,
				pricing.CourtID, interval.EndTime, interval.Price,
			); err != nil {
				return fmt.Errorf("insert pricing interval: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) loadPricing(ctx context.Context, courtID string) (*booking.Pricing, error) {
	var pricing booking.Pricing
	err := s.db.GetContext(ctx, &pricing, `
		SELECT court_id, is_single_price, single_price, deposit
		FROM court_pricing WHERE court_id = ?`, courtID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pricing for %s: %w", courtID, err)
	}

	if err := s.db.SelectContext(ctx, &pricing.Intervals, `
		SELECT end_time, price FROM court_pricing_intervals
		WHERE court_id = ? ORDER BY end_time`, courtID); err != nil {
		return nil, fmt.Errorf("get pricing intervals for %s: %w", courtID, err)
	}
	return &pricing, nil
}

// DayHours returns the operating window for a weekday (Monday=0). A missing
// row reads as closed.
func (s *Store) DayHours(ctx context.Context, weekday int) (booking.DayHours, error) {
	var hours booking.DayHours
	err := s.db.GetContext(ctx, &hours, `
		SELECT day_of_week, is_open, open_time, close_time
		FROM operating_hours WHERE day_of_week = ?`, weekday)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.DayHours{DayOfWeek: weekday}, nil
	}
	if err != nil {
		return booking.DayHours{}, fmt.Errorf("get operating hours for day %d: %w", weekday, err)
	}
	return hours, nil
}

// SetDayHours upserts one weekday's operating window.
func (s *Store) SetDayHours(ctx context.Context, hours booking.DayHours) error {
	if hours.DayOfWeek < 0 || hours.DayOfWeek > 6 {
		return fmt.Errorf("day of week out of range: %d", hours.DayOfWeek)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO operating_hours (day_of_week, is_open, open_time, close_time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(day_of_week) DO UPDATE SET
			is_open = excluded.is_open,
			open_time = excluded.open_time,
			close_time = excluded.close_time`,
		hours.DayOfWeek, hours.IsOpen, hours.OpenTime, hours.CloseTime,
	)
	if err != nil {
		return fmt.Errorf("upsert operating hours: %w", err)
	}
	return nil
}

// ListOperatingHours returns all configured weekdays ordered Monday first.
func (s *Store) ListOperatingHours(ctx context.Context) ([]booking.DayHours, error) {
	var hours []booking.DayHours
	if err := s.db.SelectContext(ctx, &hours, `
		SELECT day_of_week, is_open, open_time, close_time
		FROM operating_hours ORDER BY day_of_week`); err != nil {
		return nil, fmt.Errorf("list operating hours: %w", err)
	}
	return hours, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return booking.ErrNotFound
	}
	return nil
}
