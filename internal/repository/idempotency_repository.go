package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ordercore/order-service/internal/models"
)

// IdempotencyRepository implements the idempotency registry: a (key,
// operation_type) row recorded exactly once per logical operation,
// carrying enough of the result to replay a response without redoing
// the work. Uniqueness is enforced by the database, not by a
// read-then-write check — the unique constraint on key is the
// serialization point, not a prior SELECT.
type IdempotencyRepository interface {
	Reserve(ctx context.Context, tx pgx.Tx, key, operationType string) (reserved bool, existing *models.IdempotencyRecord, err error)
	Complete(ctx context.Context, tx pgx.Tx, key, resultEntityID, resultData string) error
	Get(ctx context.Context, key string) (*models.IdempotencyRecord, error)
	CleanupOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PostgresIdempotencyRepository is the Postgres-backed IdempotencyRepository.
type PostgresIdempotencyRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

// Reserve attempts to claim key for operationType. It returns true if this
// call won the race and the caller should proceed with the operation and
// later call Complete; it returns false if the key is already recorded, in
// which case the existing record is returned for the caller to replay.
func (r *PostgresIdempotencyRepository) Reserve(ctx context.Context, tx pgx.Tx, key, operationType string) (reserved bool, existing *models.IdempotencyRecord, err error) {
	result, err := tx.Exec(ctx, `
		INSERT INTO idempotency_records (key, operation_type, result_entity_id, result_data, created_at)
		VALUES ($1, $2, '', '', NOW())
		ON CONFLICT (key) DO NOTHING
	`, key, operationType)
	if err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to reserve idempotency key")
		return false, nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if result.RowsAffected() == 1 {
		return true, nil, nil
	}

	rec, err := r.get(ctx, tx, key)
	if err != nil {
		return false, nil, err
	}
	return false, rec, nil
}

// Complete fills in the result of a previously reserved key. MUST be
// called within the same transaction that reserved it, so a failed
// operation leaves no completed (or even reserved) record behind.
func (r *PostgresIdempotencyRepository) Complete(ctx context.Context, tx pgx.Tx, key, resultEntityID, resultData string) error {
	result, err := tx.Exec(ctx, `
		UPDATE idempotency_records
		SET result_entity_id = $1, result_data = $2
		WHERE key = $3
	`, resultEntityID, resultData, key)
	if err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to complete idempotency record")
		return fmt.Errorf("complete idempotency record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrIdempotencyConflict
	}
	return nil
}

// Get returns the idempotency record for key, outside of any transaction.
func (r *PostgresIdempotencyRepository) Get(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	return r.get(ctx, r.pool, key)
}

type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *PostgresIdempotencyRepository) get(ctx context.Context, q Querier, key string) (*models.IdempotencyRecord, error) {
	var rec models.IdempotencyRecord
	err := q.QueryRow(ctx, `
		SELECT key, operation_type, result_entity_id, result_data, created_at
		FROM idempotency_records WHERE key = $1
	`, key).Scan(&rec.Key, &rec.OperationType, &rec.ResultEntityID, &rec.ResultData, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrIdempotencyConflict
		}
		return nil, fmt.Errorf("get idempotency record: %w", err)
	}
	return &rec, nil
}

// CleanupOlderThan deletes idempotency records older than cutoff.
// There is no fixed TTL column; callers decide the retention window,
// which should sit well past any plausible retry window.
func (r *PostgresIdempotencyRepository) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM idempotency_records WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup idempotency records: %w", err)
	}
	return result.RowsAffected(), nil
}
