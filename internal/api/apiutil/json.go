package apiutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/caja"
)

const maxBodyBytes = 1 << 20

// RespondJSON writes v with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// DecodeJSON reads a request body into v, rejecting oversized payloads.
func DecodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse request body: %w", err)
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// RespondError maps engine errors to HTTP statuses: Conflict 409, NotFound
// 404, ValidationError 400, ConfigurationError 409, everything else 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation    booking.ValidationError
		configuration booking.ConfigurationError
	)

	switch {
	case errors.Is(err, booking.ErrConflict):
		RespondJSON(w, http.StatusConflict, errorBody{Error: "No hay disponibilidad suficiente para este turno", Kind: "conflict"})
	case errors.Is(err, booking.ErrNotFound):
		RespondJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Kind: "not_found"})
	case errors.As(err, &validation):
		RespondJSON(w, http.StatusBadRequest, errorBody{Error: validation.Error(), Kind: "validation"})
	case errors.As(err, &configuration):
		RespondJSON(w, http.StatusConflict, errorBody{Error: configuration.Error(), Kind: "configuration"})
	case errors.Is(err, caja.ErrInsufficientStock):
		RespondJSON(w, http.StatusConflict, errorBody{Error: "Stock insuficiente", Kind: "conflict"})
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
		RespondJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error", Kind: "internal"})
	}
}
