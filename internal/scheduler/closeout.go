package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/caja"
)

// MovementSource supplies the day's ledger for the close job.
type MovementSource interface {
	ListMovements(ctx context.Context, from, to time.Time) ([]caja.Movement, error)
}

const closeoutTimeout = 30 * time.Second

// RegisterDailyClose schedules the end-of-day cash-register summary at the
// given "HH:mm" local time.
func (s *Service) RegisterDailyClose(movements MovementSource, at string) error {
	minutes, err := booking.ParseClock(at)
	if err != nil {
		return err
	}
	return s.RegisterDaily("caja-daily-close", minutes/60, minutes%60, func() {
		runDailyClose(movements)
	})
}

func runDailyClose(movements MovementSource) {
	ctx, cancel := context.WithTimeout(context.Background(), closeoutTimeout)
	defer cancel()

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	logger := log.With().Str("component", "caja_closeout").Str("date", dayStart.Format("2006-01-02")).Logger()

	entries, err := movements.ListMovements(ctx, dayStart, now)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load movements for daily close")
		return
	}

	report := caja.BuildReport(entries, now)
	logger.Info().
		Int("movements", len(report.Movements)).
		Int64("total_sales", report.TotalSales).
		Int64("total_reservations", report.TotalReservations).
		Int64("total_revenue", report.TotalRevenue).
		Int64("total_cost", report.TotalCost).
		Int64("net_profit", report.NetProfit).
		Msg("Daily cash-register close")
}
