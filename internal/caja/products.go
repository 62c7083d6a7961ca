package caja

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInsufficientStock rejects a sale larger than the remaining stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// Product categories. Only "Articulo" entries track stock meaningfully.
const (
	ProductArticulo = "Articulo"
	ProductConcepto = "Concepto"
)

// Product is a cash-register catalog item. "Articulo" entries carry stock;
// "Concepto" entries are services like racket rental.
type Product struct {
	ID            string `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Category      string `json:"category" db:"category"`
	PurchasePrice int64  `json:"purchasePrice" db:"purchase_price"`
	Price         int64  `json:"price" db:"price"`
	Stock         int64  `json:"stock" db:"stock"`
	Description   string `json:"description,omitempty" db:"description"`
	IsActive      bool   `json:"isActive" db:"is_active"`
}

// SaleMovement builds the Venta movement for selling quantity units of a
// product. Cost is the purchase price of the units sold; profit is the
// remainder.
func SaleMovement(product Product, quantity, totalPrice int64, paymentMethod string, date time.Time) Movement {
	cost := product.PurchasePrice * quantity
	return Movement{
		ID:            uuid.New().String(),
		Type:          TypeVenta,
		Description:   fmt.Sprintf("Venta %s x%d", product.Name, quantity),
		Amount:        totalPrice,
		Cost:          cost,
		Profit:        totalPrice - cost,
		Date:          date,
		Category:      CategoryVentaProducto,
		PaymentMethod: paymentMethod,
	}
}
