package models

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a committed-but-not-yet-published integration event,
// written in the same transaction as the business mutation it
// describes.
type OutboxEvent struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	EventPayload  map[string]interface{}
	CreatedAt     time.Time
	ProcessedAt   *time.Time
	RetryCount    int
	MaxRetries    int
	LastError     *string
}

// IsProcessed returns true if the event has been successfully published.
func (e *OutboxEvent) IsProcessed() bool {
	return e.ProcessedAt != nil
}

// CanRetry returns true if the event can be retried.
func (e *OutboxEvent) CanRetry() bool {
	return e.RetryCount < e.MaxRetries
}

// AggregateType constants.
const (
	AggregateTypeOrder    = "order"
	AggregateTypeCustomer = "customer"
)

// EventType constants for the order core's integration events.
const (
	EventTypeOrderCreated      = "order.created"
	EventTypeOrderCancelled    = "order.cancelled"
	EventTypePaymentAuthorized = "payment.authorized"
	EventTypePaymentVoided     = "payment.voided"
	EventTypeLoyaltyCredited   = "loyalty.credited"
)
