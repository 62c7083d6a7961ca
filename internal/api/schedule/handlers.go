// internal/api/schedule/handlers.go
package schedule

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AgustinBaezRep/reservar-engine/internal/api/apiutil"
	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/store"
)

var (
	courts             *store.Store
	durations          booking.SportDurations
	defaultGranularity int
	initOnce           sync.Once
)

const scheduleQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *store.Store, sportDurations booking.SportDurations, granularityMinutes int) {
	if s == nil {
		return
	}
	initOnce.Do(func() {
		courts = s
		durations = sportDurations
		if durations == nil {
			durations = booking.DefaultSportDurations()
		}
		defaultGranularity = granularityMinutes
		if defaultGranularity <= 0 {
			defaultGranularity = 30
		}
	})
}

// SlotView is one bookable start time on one court, priced for that start.
type SlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}

// CourtSchedule is one court's row in the day grid.
type CourtSchedule struct {
	CourtID   string     `json:"courtId"`
	CourtName string     `json:"courtName"`
	CourtType string     `json:"courtType"`
	Slots     []SlotView `json:"slots"`
}

// DaySchedule is the full grid for one date.
type DaySchedule struct {
	Date               string          `json:"date"`
	GranularityMinutes int             `json:"granularityMinutes"`
	IsOpen             bool            `json:"isOpen"`
	OpenTime           string          `json:"openTime,omitempty"`
	CloseTime          string          `json:"closeTime,omitempty"`
	Courts             []CourtSchedule `json:"courts"`
}

// GET /api/v1/schedule
func HandleDaySchedule(w http.ResponseWriter, r *http.Request) {
	if courts == nil {
		log.Ctx(r.Context()).Error().Msg("Schedule handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	date := r.URL.Query().Get("date")
	weekday, err := booking.WeekdayIndex(date)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	granularity := defaultGranularity
	if raw := r.URL.Query().Get("granularity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apiutil.RespondError(w, r, booking.ValidationError{Field: "granularity", Reason: "must be a positive number of minutes"})
			return
		}
		granularity = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), scheduleQueryTimeout)
	defer cancel()

	hours, err := courts.DayHours(ctx, weekday)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	day := DaySchedule{
		Date:               date,
		GranularityMinutes: granularity,
		IsOpen:             hours.IsOpen,
		OpenTime:           hours.OpenTime,
		CloseTime:          hours.CloseTime,
		Courts:             []CourtSchedule{},
	}

	slots := booking.GenerateSlots(hours, granularity)
	if len(slots) == 0 {
		apiutil.RespondJSON(w, http.StatusOK, day)
		return
	}

	activeCourts, err := courts.ListCourts(ctx, true)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	reserved, err := courts.ListByDate(ctx, date, false)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	for _, court := range activeCourts {
		day.Courts = append(day.Courts, buildCourtRow(court, date, hours, slots, reserved))
	}
	apiutil.RespondJSON(w, http.StatusOK, day)
}

func buildCourtRow(court booking.Court, date string, hours booking.DayHours, slots []booking.TimeSlot, reserved []booking.Reservation) CourtSchedule {
	duration := durations.DurationFor(court.Type)
	row := CourtSchedule{
		CourtID:   court.ID,
		CourtName: court.Name,
		CourtType: court.Type,
		Slots:     make([]SlotView, 0, len(slots)),
	}

	for _, slot := range slots {
		start, err := booking.ParseClock(slot.Label)
		if err != nil {
			continue
		}
		endTime := booking.FormatClock(start + duration)
		candidate := booking.Candidate{CourtID: court.ID, Date: date, StartTime: slot.Label, EndTime: endTime}

		available := booking.IsAvailable(candidate, "", reserved) && fitsBeforeClose(hours, start+duration)
		row.Slots = append(row.Slots, SlotView{
			StartTime: slot.Label,
			EndTime:   endTime,
			Price:     booking.ResolvePrice(court, slot.Label),
			Available: available,
		})
	}
	return row
}

func fitsBeforeClose(hours booking.DayHours, end int) bool {
	closing, err := booking.ParseDayBoundary(hours.CloseTime)
	if err != nil {
		return false
	}
	return end <= closing
}
