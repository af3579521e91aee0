package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ordercore/order-service/internal/models"
)

// ProductRepository reads Product rows and mutates stock_quantity.
type ProductRepository interface {
	GetBySKU(ctx context.Context, tx pgx.Tx, sku string) (*models.Product, error)
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error
	IncrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error
}

// PostgresProductRepository mutates stock_quantity only via an atomic
// conditional update: "UPDATE ... SET stock = stock - q WHERE id = ?
// AND stock >= q", so a concurrent shortfall fails the update rather
// than racing a read-then-write check.
type PostgresProductRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

const productSelectQuery = `
	SELECT id, sku, name, description, price, stock_quantity, active, created_at, updated_at
	FROM products`

// GetBySKU looks up a product by its unique SKU. MUST be called within
// tx when the caller intends to decrement stock afterward, so the read
// and the conditional update observe the same snapshot under
// serializable isolation.
func (r *PostgresProductRepository) GetBySKU(ctx context.Context, tx pgx.Tx, sku string) (*models.Product, error) {
	return r.scan(tx.QueryRow(ctx, productSelectQuery+" WHERE sku = $1", sku))
}

// DecrementStock atomically reserves quantity units of product id. It
// returns models.ErrInsufficientStock if the row-count affected is zero.
// It does not tell "not enough stock" apart from "product vanished":
// both report ErrInsufficientStock (the order service already holds the
// product row from GetBySKU).
func (r *PostgresProductRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	result, err := tx.Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`, quantity, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to decrement stock")
		return fmt.Errorf("decrement stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrInsufficientStock
	}
	return nil
}

// IncrementStock restores quantity units to product id, used on order
// cancellation.
func (r *PostgresProductRepository) IncrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	result, err := tx.Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity + $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to restock product")
		return fmt.Errorf("restock product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) scan(row pgx.Row) (*models.Product, error) {
	var p models.Product
	var price string
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &price, &p.StockQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	return &p, nil
}
