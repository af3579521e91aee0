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

// PaymentRepository persists one Payment row per order. A payment's
// retry bookkeeping (RetryAttempts) lives on the row itself rather than
// in a separate attempts table.
type PaymentRepository interface {
	Create(ctx context.Context, tx pgx.Tx, p *models.Payment) error
	GetByOrderID(ctx context.Context, q Querier, orderID uuid.UUID) (*models.Payment, error)
	GetByID(ctx context.Context, q Querier, id uuid.UUID) (*models.Payment, error)
	UpdateResult(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.PaymentStatus, externalID, failureReason *string, retryAttempts int) error
	MarkVoided(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// PostgresPaymentRepository is the Postgres-backed PaymentRepository.
type PostgresPaymentRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

const paymentSelectQuery = `
	SELECT id, order_id, status, amount, external_authorization_id,
	       retry_attempts, failure_reason, created_at, updated_at
	FROM payments`

// Create inserts the initial PENDING payment row for an order.
func (r *PostgresPaymentRepository) Create(ctx context.Context, tx pgx.Tx, p *models.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := tx.Exec(ctx, `
		INSERT INTO payments (
			id, order_id, status, amount, external_authorization_id,
			retry_attempts, failure_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.OrderID, p.Status, p.Amount.String(), p.ExternalAuthorizationID,
		p.RetryAttempts, p.FailureReason, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", p.OrderID.String()).Msg("failed to create payment")
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// GetByOrderID returns the payment attached to an order. q may be a
// transaction or the pool directly, for read-only call sites that
// don't need a transaction (e.g. GetOrder's payment snapshot).
func (r *PostgresPaymentRepository) GetByOrderID(ctx context.Context, q Querier, orderID uuid.UUID) (*models.Payment, error) {
	return r.scan(q.QueryRow(ctx, paymentSelectQuery+" WHERE order_id = $1", orderID))
}

// GetByID returns a payment by its own id, used by the void path which
// only has the payment id.
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*models.Payment, error) {
	return r.scan(q.QueryRow(ctx, paymentSelectQuery+" WHERE id = $1", id))
}

// UpdateResult records the outcome of an authorization attempt: final
// status, external authorization id on success, failure reason on
// failure, and the attempt count observed by the caller's retry loop.
func (r *PostgresPaymentRepository) UpdateResult(ctx context.Context, tx pgx.Tx, id uuid.UUID, status models.PaymentStatus, externalID, failureReason *string, retryAttempts int) error {
	result, err := tx.Exec(ctx, `
		UPDATE payments
		SET status = $1, external_authorization_id = $2, failure_reason = $3,
		    retry_attempts = $4, updated_at = NOW()
		WHERE id = $5
	`, status, externalID, failureReason, retryAttempts, id)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_id", id.String()).Msg("failed to update payment result")
		return fmt.Errorf("update payment result: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrPaymentNotFound
	}
	return nil
}

// MarkVoided transitions a payment to VOIDED on order cancellation.
func (r *PostgresPaymentRepository) MarkVoided(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	result, err := tx.Exec(ctx, `
		UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.PaymentStatusVoided, id)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_id", id.String()).Msg("failed to void payment")
		return fmt.Errorf("void payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrPaymentNotFound
	}
	return nil
}

func (r *PostgresPaymentRepository) scan(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	var amount string
	err := row.Scan(
		&p.ID, &p.OrderID, &p.Status, &amount, &p.ExternalAuthorizationID,
		&p.RetryAttempts, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	return &p, nil
}
