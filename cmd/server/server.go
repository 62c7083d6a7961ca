// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AgustinBaezRep/reservar-engine/internal/api"
	cajaapi "github.com/AgustinBaezRep/reservar-engine/internal/api/caja"
	"github.com/AgustinBaezRep/reservar-engine/internal/api/courts"
	"github.com/AgustinBaezRep/reservar-engine/internal/api/reservations"
	"github.com/AgustinBaezRep/reservar-engine/internal/api/schedule"
	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/config"
	"github.com/AgustinBaezRep/reservar-engine/internal/store"
)

func newServer(cfg *config.Config, st *store.Store, manager *booking.Manager) *http.Server {
	reservations.InitHandlers(manager, st)
	schedule.InitHandlers(st, cfg.Booking.SportDurations, cfg.Booking.SlotGranularityMinutes)
	courts.InitHandlers(st, manager)
	cajaapi.InitHandlers(st)

	router := http.NewServeMux()
	registerRoutes(router)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Day schedule grid
	mux.HandleFunc("GET /api/v1/schedule", schedule.HandleDaySchedule)

	// Reservation lifecycle
	mux.HandleFunc("GET /api/v1/reservations", reservations.HandleList)
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleCreate)
	mux.HandleFunc("GET /api/v1/reservations/{id}", reservations.HandleGet)
	mux.HandleFunc("PUT /api/v1/reservations/{id}", reservations.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/reservations/{id}", reservations.HandleCancel)
	mux.HandleFunc("POST /api/v1/reservations/{id}/restore", reservations.HandleRestore)
	mux.HandleFunc("GET /api/v1/reservations/{id}/movements", reservations.HandleMovements)

	// Court configuration
	mux.HandleFunc("GET /api/v1/courts", courts.HandleList)
	mux.HandleFunc("POST /api/v1/courts", courts.HandleCreate)
	mux.HandleFunc("GET /api/v1/courts/{id}", courts.HandleGet)
	mux.HandleFunc("PUT /api/v1/courts/{id}", courts.HandleUpdate)
	mux.HandleFunc("POST /api/v1/courts/{id}/active", courts.HandleSetActive)
	mux.HandleFunc("PUT /api/v1/courts/{id}/pricing", courts.HandleUpdatePricing)
	mux.HandleFunc("GET /api/v1/operating-hours", courts.HandleListHours)
	mux.HandleFunc("PUT /api/v1/operating-hours", courts.HandleSetHours)

	// Cash register
	mux.HandleFunc("GET /api/v1/caja/movements", cajaapi.HandleListMovements)
	mux.HandleFunc("GET /api/v1/caja/report", cajaapi.HandleReport)
	mux.HandleFunc("POST /api/v1/caja/expenses", cajaapi.HandleCreateExpense)
	mux.HandleFunc("GET /api/v1/caja/products", cajaapi.HandleListProducts)
	mux.HandleFunc("POST /api/v1/caja/products", cajaapi.HandleCreateProduct)
	mux.HandleFunc("PUT /api/v1/caja/products/{id}", cajaapi.HandleUpdateProduct)
	mux.HandleFunc("POST /api/v1/caja/sales", cajaapi.HandleRegisterSale)
}
