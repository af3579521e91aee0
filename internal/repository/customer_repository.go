package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ordercore/order-service/internal/models"
)

// CustomerRepository persists Customer rows. Email lookup is
// case-sensitive; the core never deletes customers.
type CustomerRepository interface {
	GetByEmail(ctx context.Context, tx pgx.Tx, email string) (*models.Customer, error)
	Lookup(ctx context.Context, email string) (*models.Customer, error)
	FindOrCreate(ctx context.Context, tx pgx.Tx, email, firstName string) (*models.Customer, error)
	GetByID(ctx context.Context, q Querier, id uuid.UUID) (*models.Customer, error)
	AddLoyaltyPoints(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int) (int, error)
}

// PostgresCustomerRepository is the Postgres-backed CustomerRepository.
type PostgresCustomerRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

const customerSelectQuery = `
	SELECT id, email, first_name, last_name, loyalty_points FROM customers`

// GetByEmail looks up a customer by exact (case-sensitive) email match,
// within a transaction.
func (r *PostgresCustomerRepository) GetByEmail(ctx context.Context, tx pgx.Tx, email string) (*models.Customer, error) {
	return r.scan(tx.QueryRow(ctx, customerSelectQuery+" WHERE email = $1", email))
}

// Lookup is GetByEmail's read-only counterpart for call sites outside a
// transaction, such as listing a customer's orders.
func (r *PostgresCustomerRepository) Lookup(ctx context.Context, email string) (*models.Customer, error) {
	return r.scan(r.pool.QueryRow(ctx, customerSelectQuery+" WHERE email = $1", email))
}

// FindOrCreate returns the existing customer for email, or creates one
// with the derived first/last name. Concurrent creators racing on the
// unique email constraint are resolved by ON CONFLICT DO NOTHING
// followed by a re-select, the same unique-constraint-as-serialization
// point the idempotency registry relies on.
func (r *PostgresCustomerRepository) FindOrCreate(ctx context.Context, tx pgx.Tx, email, firstName string) (*models.Customer, error) {
	if c, err := r.GetByEmail(ctx, tx, email); err == nil {
		return c, nil
	} else if !errors.Is(err, models.ErrCustomerNotFound) {
		return nil, err
	}

	id := uuid.New()
	_, err := tx.Exec(ctx, `
		INSERT INTO customers (id, email, first_name, last_name, loyalty_points)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (email) DO NOTHING
	`, id, email, firstName, models.LastNamePlaceholder)
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to create customer")
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return r.GetByEmail(ctx, tx, email)
}

// GetByID looks up a customer by id. q may be a transaction or the pool
// directly, for read-only call sites like an order's customer_email
// snapshot as well as the tx-scoped loyalty worker.
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*models.Customer, error) {
	return r.scan(q.QueryRow(ctx, customerSelectQuery+" WHERE id = $1", id))
}

// AddLoyaltyPoints increments loyalty_points by delta within tx (spec
// §4.8 step 5). Callers are responsible for cap enforcement before
// calling this.
func (r *PostgresCustomerRepository) AddLoyaltyPoints(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int) (int, error) {
	var newBalance int
	err := tx.QueryRow(ctx, `
		UPDATE customers SET loyalty_points = loyalty_points + $1
		WHERE id = $2
		RETURNING loyalty_points
	`, delta, id).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrCustomerNotFound
		}
		return 0, fmt.Errorf("add loyalty points: %w", err)
	}
	return newBalance, nil
}

func (r *PostgresCustomerRepository) scan(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.LoyaltyPoints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return &c, nil
}
