package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AgustinBaezRep/reservar-engine/internal/booking"
	"github.com/AgustinBaezRep/reservar-engine/internal/caja"
)

const productColumns = `
	id, name, category, purchase_price, price, stock, description, is_active`

// CreateProduct inserts a catalog item.
func (s *Store) CreateProduct(ctx context.Context, p caja.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Category, p.PurchasePrice, p.Price, p.Stock, p.Description, p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProduct updates a catalog item.
func (s *Store) UpdateProduct(ctx context.Context, p caja.Product) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, category = ?, purchase_price = ?, price = ?, stock = ?, description = ?, is_active = ?
		WHERE id = ?`,
		p.Name, p.Category, p.PurchasePrice, p.Price, p.Stock, p.Description, p.IsActive, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(result)
}

// GetProduct loads one catalog item.
func (s *Store) GetProduct(ctx context.Context, id string) (caja.Product, error) {
	var p caja.Product
	err := s.db.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return caja.Product{}, booking.ErrNotFound
	}
	if err != nil {
		return caja.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// ListProducts returns the catalog ordered by name.
func (s *Store) ListProducts(ctx context.Context) ([]caja.Product, error) {
	var products []caja.Product
	err := s.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// RegisterSale decrements stock and appends the Venta movement in one
// transaction. Selling more than the remaining stock fails with
// caja.ErrInsufficientStock and changes nothing.
func (s *Store) RegisterSale(ctx context.Context, productID string, quantity int64, paymentMethod string, date time.Time) (caja.Movement, error) {
	if quantity <= 0 {
		return caja.Movement{}, fmt.Errorf("sale quantity must be positive")
	}

	var movement caja.Movement
	err := s.db.RunInTx(ctx, func(tx *sqlx.Tx) error {
		var product caja.Product
		err := tx.GetContext(ctx, &product, `SELECT `+productColumns+` FROM products WHERE id = ?`, productID)
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get product %s: %w", productID, err)
		}
		// Only stocked articles are decremented; service concepts sell
		// without inventory.
		if product.Category == caja.ProductArticulo {
			if product.Stock < quantity {
				return caja.ErrInsufficientStock
			}
			if _, err := tx.ExecContext(ctx, `
				UPDATE products SET stock = stock - ? WHERE id = ?`,
				quantity, productID,
			); err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		movement = caja.SaleMovement(product, quantity, product.Price*quantity, paymentMethod, date)
		return insertMovement(ctx, tx, movement)
	})
	if err != nil {
		return caja.Movement{}, err
	}
	return movement, nil
}
