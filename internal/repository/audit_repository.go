package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ordercore/order-service/internal/models"
)

// AuditRepository persists append-only AuditLog rows written in the
// same transaction as the operation they record. Unlike the outbox it
// carries no retry bookkeeping: an audit entry that commits with its
// transaction is done, nothing further publishes it.
type AuditRepository interface {
	Record(ctx context.Context, tx pgx.Tx, log *models.AuditLog) error
	ListByEntity(ctx context.Context, entityType models.EntityType, entityID string) ([]*models.AuditLog, error)
}

// PostgresAuditRepository is the Postgres-backed AuditRepository.
type PostgresAuditRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

// Record inserts an audit log entry within tx, truncating Details to
// models.MaxDetailsLen.
func (r *PostgresAuditRepository) Record(ctx context.Context, tx pgx.Tx, log *models.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.Timestamp = time.Now()
	if len(log.Details) > models.MaxDetailsLen {
		log.Details = log.Details[:models.MaxDetailsLen]
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO audit_logs (id, operation, entity_type, entity_id, details, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, log.ID, log.Operation, log.EntityType, log.EntityID, log.Details, log.Timestamp)
	if err != nil {
		r.logger.Error().Err(err).
			Str("operation", string(log.Operation)).
			Str("entity_id", log.EntityID).
			Msg("failed to record audit log")
		return fmt.Errorf("record audit log: %w", err)
	}
	return nil
}

// ListByEntity returns audit entries for an entity, newest first.
func (r *PostgresAuditRepository) ListByEntity(ctx context.Context, entityType models.EntityType, entityID string) ([]*models.AuditLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, operation, entity_type, entity_id, details, timestamp
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY timestamp DESC
	`, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.Operation, &l.EntityType, &l.EntityID, &l.Details, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
