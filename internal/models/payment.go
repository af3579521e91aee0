package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a Payment.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusVoided     PaymentStatus = "VOIDED"
)

// Payment is at most one per Order.
type Payment struct {
	ID                      uuid.UUID
	OrderID                 uuid.UUID
	Status                  PaymentStatus
	Amount                  decimal.Decimal
	ExternalAuthorizationID *string
	RetryAttempts           int
	FailureReason           *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
