// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AgustinBaezRep/reservar-engine/internal/api/apiutil"
	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/store"
)

var (
	manager  *booking.Manager
	ledger   *store.Store
	initOnce sync.Once
)

const reservationQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(m *booking.Manager, s *store.Store) {
	if m == nil || s == nil {
		return
	}
	initOnce.Do(func() {
		manager = m
		ledger = s
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if manager == nil || ledger == nil {
		log.Ctx(r.Context()).Error().Msg("Reservation handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return false
	}
	return true
}

// GET /api/v1/reservations
func HandleList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	date := r.URL.Query().Get("date")
	includeCancelled := r.URL.Query().Get("includeCancelled") == "true"

	var (
		reservations []booking.Reservation
		err          error
	)
	if date == "" {
		reservations, err = ledger.ListAll(ctx)
	} else {
		reservations, err = ledger.ListByDate(ctx, date, includeCancelled)
	}
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	if reservations == nil {
		reservations = []booking.Reservation{}
	}
	apiutil.RespondJSON(w, http.StatusOK, reservations)
}

// GET /api/v1/reservations/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	reservation, err := ledger.GetReservation(ctx, r.PathValue("id"))
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, reservation)
}

// POST /api/v1/reservations
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req booking.CreateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	reservation, err := manager.Create(ctx, req)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, reservation)
}

// PUT /api/v1/reservations/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req booking.UpdateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	reservation, err := manager.Update(ctx, r.PathValue("id"), req)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, reservation)
}

// DELETE /api/v1/reservations/{id}
func HandleCancel(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	reservation, err := manager.Cancel(ctx, r.PathValue("id"))
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, reservation)
}

// POST /api/v1/reservations/{id}/restore
func HandleRestore(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	reservation, err := manager.Restore(ctx, r.PathValue("id"))
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, reservation)
}

// GET /api/v1/reservations/{id}/movements
func HandleMovements(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	id := r.PathValue("id")
	if _, err := ledger.GetReservation(ctx, id); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	movements, err := ledger.ListMovementsByReservation(ctx, id)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, movements)
}
