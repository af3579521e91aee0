package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ordercore/order-service/internal/models"
)

// OrderRepository is the transactional persistence contract for Order
// and its OrderItems.
type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, next models.OrderStatus, version int64) error
	GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Order, int, error)
	PaidSince(ctx context.Context, since time.Time, afterID uuid.UUID, limit int) ([]*models.Order, error)
}

// PostgresOrderRepository is the Postgres-backed OrderRepository:
// optimistic-lock update, FOR UPDATE read, unique-violation detection.
type PostgresOrderRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

// Create inserts an order and its items within tx. order.ID and
// order.Version are populated if zero.
func (r *PostgresOrderRepository) Create(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	order.Version = 1
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO orders (
			id, customer_id, status, idempotency_key, subtotal,
			discount_amount, total, created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		order.ID, order.CustomerID, order.Status, order.IdempotencyKey,
		order.Subtotal.String(), order.DiscountAmount.String(), order.Total.String(),
		order.CreatedAt, order.UpdatedAt, order.Version,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, product_sku, product_name,
				quantity, unit_price, subtotal
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			item.ID, item.OrderID, item.ProductID, item.ProductSKU, item.ProductName,
			item.Quantity, item.UnitPrice.String(), item.Subtotal.String(),
		)
		if err != nil {
			r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order item")
			return fmt.Errorf("create order item: %w", err)
		}
	}

	r.logger.Info().Str("order_id", order.ID.String()).Msg("order created")
	return nil
}

// GetByID retrieves an order with its items and payment snapshot.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := r.scanOrder(ctx, r.pool.QueryRow(ctx, orderSelectQuery+" WHERE id = $1", id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByIDForUpdate retrieves an order with a row-level lock. MUST be
// called within a transaction.
func (r *PostgresOrderRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Order, error) {
	order, err := r.scanOrder(ctx, tx.QueryRow(ctx, orderSelectQuery+" WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, orderItemsSelectQuery, order.ID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()
	items, err := scanOrderItems(rows)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// GetByIdempotencyKey looks up an order previously created under key.
func (r *PostgresOrderRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	order, err := r.scanOrder(ctx, r.pool.QueryRow(ctx, orderSelectQuery+" WHERE idempotency_key = $1", key))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus transitions order.Status with optimistic locking. MUST be
// called within a transaction.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, next models.OrderStatus, version int64) error {
	result, err := tx.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW(), version = version + 1
		WHERE id = $2 AND version = $3
	`, next, id, version)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrOptimisticLock
	}
	return nil
}

// GetByCustomerID returns a page of orders for a customer, newest first,
// with a stable secondary sort by id descending.
func (r *PostgresOrderRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Order, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders by customer: %w", err)
	}

	rows, err := r.pool.Query(ctx, orderSelectQuery+`
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders by customer: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := r.pool.Query(ctx, orderItemsSelectQuery, order.ID)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()
	items, err := scanOrderItems(rows)
	if err != nil {
		return err
	}
	order.Items = items
	return nil
}

const orderSelectQuery = `
	SELECT id, customer_id, status, idempotency_key, subtotal, discount_amount,
	       total, created_at, updated_at, version
	FROM orders`

const orderItemsSelectQuery = `
	SELECT id, order_id, product_id, product_sku, product_name, quantity, unit_price, subtotal
	FROM order_items WHERE order_id = $1 ORDER BY product_sku`

func (r *PostgresOrderRepository) scanOrder(ctx context.Context, row pgx.Row) (*models.Order, error) {
	var order models.Order
	var subtotal, discount, total string

	err := row.Scan(
		&order.ID, &order.CustomerID, &order.Status, &order.IdempotencyKey,
		&subtotal, &discount, &total, &order.CreatedAt, &order.UpdatedAt, &order.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("parse subtotal: %w", err)
	}
	if order.DiscountAmount, err = decimal.NewFromString(discount); err != nil {
		return nil, fmt.Errorf("parse discount_amount: %w", err)
	}
	if order.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	return &order, nil
}

func scanOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		var order models.Order
		var subtotal, discount, total string
		err := rows.Scan(
			&order.ID, &order.CustomerID, &order.Status, &order.IdempotencyKey,
			&subtotal, &discount, &total, &order.CreatedAt, &order.UpdatedAt, &order.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("parse subtotal: %w", err)
		}
		if order.DiscountAmount, err = decimal.NewFromString(discount); err != nil {
			return nil, fmt.Errorf("parse discount_amount: %w", err)
		}
		if order.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

func scanOrderItems(rows pgx.Rows) ([]models.OrderItem, error) {
	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		var unitPrice, subtotal string
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductSKU, &item.ProductName,
			&item.Quantity, &unitPrice, &subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit_price: %w", err)
		}
		if item.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("parse subtotal: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// PaidSince returns PAID orders updated within the lookback window,
// ordered by id, for the loyalty worker. MUST be called with a
// reasonably small limit; the worker pages through with afterID.
func (r *PostgresOrderRepository) PaidSince(ctx context.Context, since time.Time, afterID uuid.UUID, limit int) ([]*models.Order, error) {
	rows, err := r.pool.Query(ctx, orderSelectQuery+`
		WHERE status = $1 AND updated_at >= $2 AND id > $3
		ORDER BY id
		LIMIT $4
	`, models.OrderStatusPaid, since, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("query paid orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}
