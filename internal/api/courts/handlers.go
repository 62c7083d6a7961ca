// internal/api/courts/handlers.go
package courts

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AgustinBaezRep/reservar-engine/internal/api/apiutil"
	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/store"
)

var (
	catalog  *store.Store
	manager  *booking.Manager
	initOnce sync.Once
)

const courtQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *store.Store, m *booking.Manager) {
	if s == nil || m == nil {
		return
	}
	initOnce.Do(func() {
		catalog = s
		manager = m
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if catalog == nil || manager == nil {
		log.Ctx(r.Context()).Error().Msg("Court handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return false
	}
	return true
}

type courtRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Price    int64  `json:"price"`
	IsActive *bool  `json:"isActive"`
}

func (req courtRequest) validate() error {
	if req.Name == "" {
		return booking.ValidationError{Field: "name", Reason: "required"}
	}
	if req.Type == "" {
		return booking.ValidationError{Field: "type", Reason: "required"}
	}
	if req.Price <= 0 {
		return booking.ValidationError{Field: "price", Reason: "must be positive"}
	}
	return nil
}

// GET /api/v1/courts
func HandleList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	onlyActive := r.URL.Query().Get("active") == "true"
	courts, err := catalog.ListCourts(ctx, onlyActive)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	if courts == nil {
		courts = []booking.Court{}
	}
	apiutil.RespondJSON(w, http.StatusOK, courts)
}

// GET /api/v1/courts/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	court, err := catalog.GetCourt(ctx, r.PathValue("id"))
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, court)
}

// POST /api/v1/courts
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req courtRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	court := booking.Court{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Type:     req.Type,
		Price:    req.Price,
		IsActive: true,
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	if err := catalog.CreateCourt(ctx, court); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("court_id", court.ID).Str("name", court.Name).Msg("Court created")
	apiutil.RespondJSON(w, http.StatusCreated, court)
}

// PUT /api/v1/courts/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req courtRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	id := r.PathValue("id")
	current, err := catalog.GetCourt(ctx, id)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	current.Name = req.Name
	current.Type = req.Type
	current.Price = req.Price
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := catalog.UpdateCourt(ctx, current); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, current)
}

// POST /api/v1/courts/{id}/active
// Deactivation hides the court from new bookings; existing reservations are
// left untouched.
func HandleSetActive(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	id := r.PathValue("id")
	if err := catalog.SetCourtActive(ctx, id, req.IsActive); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	court, err := catalog.GetCourt(ctx, id)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, court)
}

// PUT /api/v1/courts/{id}/pricing
// Pricing edits are blocked while the court has active reservations, so
// committed price snapshots never drift from the configuration that produced
// them.
func HandleUpdatePricing(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var pricing booking.Pricing
	if err := apiutil.DecodeJSON(r, &pricing); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pricing.CourtID = r.PathValue("id")
	if err := validatePricing(pricing); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	active, err := manager.ActiveReservationCount(ctx, pricing.CourtID)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	if active > 0 {
		apiutil.RespondError(w, r, booking.ConfigurationError{
			CourtID: pricing.CourtID,
			Reason:  "court has active reservations; cancel or complete them before changing prices",
		})
		return
	}

	if err := catalog.UpdateCourtPricing(ctx, pricing); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("court_id", pricing.CourtID).Msg("Court pricing updated")
	court, err := catalog.GetCourt(ctx, pricing.CourtID)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, court)
}

func validatePricing(pricing booking.Pricing) error {
	if pricing.IsSinglePrice {
		if pricing.SinglePrice == nil || *pricing.SinglePrice <= 0 {
			return booking.ValidationError{Field: "singlePrice", Reason: "must be positive for single-price mode"}
		}
		return nil
	}
	for _, interval := range pricing.Intervals {
		if _, err := booking.ParseDayBoundary(interval.EndTime); err != nil {
			return booking.ValidationError{Field: "intervals", Reason: err.Error()}
		}
		if interval.Price <= 0 {
			return booking.ValidationError{Field: "intervals", Reason: "interval price must be positive"}
		}
	}
	return nil
}

// GET /api/v1/operating-hours
func HandleListHours(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	hours, err := catalog.ListOperatingHours(ctx)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	if hours == nil {
		hours = []booking.DayHours{}
	}
	apiutil.RespondJSON(w, http.StatusOK, hours)
}

// PUT /api/v1/operating-hours
// Accepts the full week or any subset of days; each entry is upserted.
func HandleSetHours(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var week []booking.DayHours
	if err := apiutil.DecodeJSON(r, &week); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, day := range week {
		if err := validateDayHours(day); err != nil {
			apiutil.RespondError(w, r, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtQueryTimeout)
	defer cancel()

	for _, day := range week {
		if err := catalog.SetDayHours(ctx, day); err != nil {
			apiutil.RespondError(w, r, err)
			return
		}
	}
	hours, err := catalog.ListOperatingHours(ctx)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, hours)
}

func validateDayHours(day booking.DayHours) error {
	if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
		return booking.ValidationError{Field: "dayOfWeek", Reason: "must be 0 (Monday) through 6 (Sunday)"}
	}
	if !day.IsOpen {
		return nil
	}
	open, err := booking.ParseClock(day.OpenTime)
	if err != nil {
		return booking.ValidationError{Field: "openTime", Reason: err.Error()}
	}
	closing, err := booking.ParseDayBoundary(day.CloseTime)
	if err != nil {
		return booking.ValidationError{Field: "closeTime", Reason: err.Error()}
	}
	if closing <= open {
		return booking.ValidationError{Field: "closeTime", Reason: "must be after the opening time"}
	}
	return nil
}
