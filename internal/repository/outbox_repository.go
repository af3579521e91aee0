package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ordercore/order-service/internal/models"
)

// OutboxRepository persists OutboxEvent rows written in the same
// transaction as the domain mutation that produced them, and read back
// by the integration event publisher.
type OutboxRepository interface {
	Create(ctx context.Context, tx pgx.Tx, event *models.OutboxEvent) error
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*models.OutboxEvent, error)
	MarkProcessed(ctx context.Context, eventID uuid.UUID) error
	IncrementRetryCount(ctx context.Context, eventID uuid.UUID, errMsg string) error
	CleanupProcessedEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// PostgresOutboxRepository is the Postgres-backed OutboxRepository.
type PostgresOutboxRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

// Create inserts an outbox event within tx. MUST be called in the same
// transaction as the domain write it describes.
func (r *PostgresOutboxRepository) Create(ctx context.Context, tx pgx.Tx, event *models.OutboxEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()

	payloadJSON, err := json.Marshal(event.EventPayload)
	if err != nil {
		r.logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal event payload")
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO outbox_events (
			id, aggregate_id, aggregate_type, event_type, event_payload,
			created_at, retry_count, max_retries
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, event.ID, event.AggregateID, event.AggregateType, event.EventType,
		payloadJSON, event.CreatedAt, event.RetryCount, event.MaxRetries)
	if err != nil {
		r.logger.Error().Err(err).
			Str("event_type", event.EventType).
			Str("aggregate_id", event.AggregateID.String()).
			Msg("failed to create outbox event")
		return fmt.Errorf("create outbox event: %w", err)
	}

	r.logger.Debug().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Msg("outbox event created")
	return nil
}

// GetUnprocessedEvents returns events not yet processed and still under
// their retry budget, oldest first, for the publisher's poll loop.
func (r *PostgresOutboxRepository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*models.OutboxEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, aggregate_id, aggregate_type, event_type, event_payload,
		       created_at, processed_at, retry_count, max_retries, last_error
		FROM outbox_events
		WHERE processed_at IS NULL AND retry_count < max_retries
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query unprocessed events")
		return nil, fmt.Errorf("query unprocessed events: %w", err)
	}
	defer rows.Close()

	var events []*models.OutboxEvent
	for rows.Next() {
		var event models.OutboxEvent
		var payloadJSON []byte
		err := rows.Scan(
			&event.ID, &event.AggregateID, &event.AggregateType, &event.EventType,
			&payloadJSON, &event.CreatedAt, &event.ProcessedAt, &event.RetryCount,
			&event.MaxRetries, &event.LastError,
		)
		if err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		if err := json.Unmarshal(payloadJSON, &event.EventPayload); err != nil {
			return nil, fmt.Errorf("unmarshal event payload for event %s: %w", event.ID, err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return events, nil
}

// MarkProcessed stamps processed_at on a successfully published event.
func (r *PostgresOutboxRepository) MarkProcessed(ctx context.Context, eventID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}
	return nil
}

// IncrementRetryCount records a failed publish attempt and its error.
func (r *PostgresOutboxRepository) IncrementRetryCount(ctx context.Context, eventID uuid.UUID, errMsg string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE outbox_events SET retry_count = retry_count + 1, last_error = $2 WHERE id = $1
	`, eventID, errMsg)
	if err != nil {
		return fmt.Errorf("increment retry count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}
	return nil
}

// CleanupProcessedEvents deletes processed events older than olderThan,
// preventing unbounded table growth.
func (r *PostgresOutboxRepository) CleanupProcessedEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM outbox_events WHERE processed_at IS NOT NULL AND processed_at < NOW() - $1::interval
	`, olderThan.String())
	if err != nil {
		return 0, fmt.Errorf("cleanup processed events: %w", err)
	}
	return result.RowsAffected(), nil
}
