// internal/api/caja/handlers.go
package caja

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AgustinBaezRep/reservar-engine/internal/api/apiutil"
	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	cashreg "github.com/AgustinBaezRep/reservar-engine/internal/caja"
	"github.com/AgustinBaezRep/reservar-engine/internal/store"
)

var (
	ledger   *store.Store
	initOnce sync.Once
)

const cajaQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *store.Store) {
	if s == nil {
		return
	}
	initOnce.Do(func() {
		ledger = s
	})
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if ledger == nil {
		log.Ctx(r.Context()).Error().Msg("Cash-register handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return false
	}
	return true
}

// parseRange reads optional from/to query parameters as "YYYY-MM-DD" dates.
// The upper bound is inclusive of the whole day.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	var from, to time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return from, to, booking.ValidationError{Field: "from", Reason: "expected YYYY-MM-DD"}
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return from, to, booking.ValidationError{Field: "to", Reason: "expected YYYY-MM-DD"}
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

// GET /api/v1/caja/movements
func HandleListMovements(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	from, to, err := parseRange(r)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cajaQueryTimeout)
	defer cancel()

	movements, err := ledger.ListMovements(ctx, from, to)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	if movements == nil {
		movements = []cashreg.Movement{}
	}
	apiutil.RespondJSON(w, http.StatusOK, movements)
}

// GET /api/v1/caja/report
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	from, to, err := parseRange(r)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cajaQueryTimeout)
	defer cancel()

	movements, err := ledger.ListMovements(ctx, from, to)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, cashreg.BuildReport(movements, time.Now()))
}

type expenseRequest struct {
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
}

// POST /api/v1/caja/expenses
// Records a Gasto movement. The amount is entered positive and stored as a
// negative ledger entry.
func HandleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req expenseRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Description == "" {
		apiutil.RespondError(w, r, booking.ValidationError{Field: "description", Reason: "required"})
		return
	}
	if req.Amount <= 0 {
		apiutil.RespondError(w, r, booking.ValidationError{Field: "amount", Reason: "must be positive"})
		return
	}

	movement := cashreg.Movement{
		ID:            uuid.New().String(),
		Type:          cashreg.TypeGasto,
		Description:   req.Description,
		Amount:        -req.Amount,
		Profit:        -req.Amount,
		Date:          time.Now(),
		Category:      cashreg.CategoryGasto,
		PaymentMethod: req.PaymentMethod,
	}

	ctx, cancel := context.WithTimeout(r.Context(), cajaQueryTimeout)
	defer cancel()

	if err := ledger.AppendMovement(ctx, movement); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("movement_id", movement.ID).Int64("amount", movement.Amount).Msg("Expense recorded")
	apiutil.RespondJSON(w, http.StatusCreated, movement)
}

type productRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	PurchasePrice int64  `json:"purchasePrice"`
	Price         int64  `json:"price"`
	Stock         int64  `json:"stock"`
	Description   string `json:"description"`
	IsActive      *bool  `json:"isActive"`
}

func (req productRequest) validate() error {
	if req.Name == "" {
		return booking.ValidationError{Field: "name", Reason: "required"}
	}
	if req.Category != cashreg.ProductArticulo && req.Category != cashreg.ProductConcepto {
		return booking.ValidationError{Field: "category", Reason: "must be Articulo or Concepto"}
	}
	if req.Price <= 0 {
		return booking.ValidationError{Field: "price", Reason: "must be positive"}
	}
	if req.PurchasePrice < 0 || req.Stock < 0 {
		return booking.ValidationError{Field: "stock", Reason: "purchase price and stock cannot be negative"}
	}
	return nil
}

// GET /api/v1/caja/products
func HandleListProducts(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), cajaQueryTimeout)
	defer cancel()

	products, err := ledger.ListProducts(ctx)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	if products == nil {
		products = []cashreg.Product{}
	}
	apiutil.RespondJSON(w, http.StatusOK, products)
}

// POST /api/v1/caja/products
func HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req productRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	product := cashreg.Product{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		Price:         req.Price,
		Stock:         req.Stock,
		Description:   req.Description,
		IsActive:      true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), cajaQueryTimeout)
	defer cancel()

	if err := ledger.CreateProduct(ctx, product); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusCreated, product)
}

// PUT /api/v1/caja/products/{id}
func HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req productRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cajaQueryTimeout)
	defer cancel()

	id := r.PathValue("id")
	current, err := ledger.GetProduct(ctx, id)
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}

	current.Name = req.Name
	current.Category = req.Category
	current.PurchasePrice = req.PurchasePrice
	current.Price = req.Price
	current.Stock = req.Stock
	current.Description = req.Description
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := ledger.UpdateProduct(ctx, current); err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	apiutil.RespondJSON(w, http.StatusOK, current)
}

type saleRequest struct {
	ProductID     string `json:"productId"`
	Quantity      int64  `json:"quantity"`
	PaymentMethod string `json:"paymentMethod"`
}

// POST /api/v1/caja/sales
func HandleRegisterSale(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	var req saleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		apiutil.RespondError(w, r, booking.ValidationError{Field: "productId", Reason: "required"})
		return
	}
	if req.Quantity <= 0 {
		apiutil.RespondError(w, r, booking.ValidationError{Field: "quantity", Reason: "must be positive"})
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "Efectivo"
	}

	ctx, cancel := context.WithTimeout(r.Context(), cajaQueryTimeout)
	defer cancel()

	movement, err := ledger.RegisterSale(ctx, req.ProductID, req.Quantity, req.PaymentMethod, time.Now())
	if err != nil {
		apiutil.RespondError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().
		Str("product_id", req.ProductID).
		Int64("quantity", req.Quantity).
		Int64("amount", movement.Amount).
		Msg("Sale registered")
	apiutil.RespondJSON(w, http.StatusCreated, movement)
}
