package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditOperation enumerates the events this core is required to
// record.
type AuditOperation string

const (
	AuditOrderCreated             AuditOperation = "ORDER_CREATED"
	AuditOrderCancelled           AuditOperation = "ORDER_CANCELLED"
	AuditPaymentAuthorized        AuditOperation = "PAYMENT_AUTHORIZED"
	AuditPaymentVoided            AuditOperation = "PAYMENT_VOIDED"
	AuditInventoryReplenishment   AuditOperation = "INVENTORY_REPLENISHMENT"
	AuditLoyaltyPointsAdded       AuditOperation = "LOYALTY_POINTS_ADDED"
)

// EntityType names the aggregate an AuditLog row describes.
type EntityType string

const (
	EntityOrder    EntityType = "ORDER"
	EntityCustomer EntityType = "CUSTOMER"
	EntityPayment  EntityType = "PAYMENT"
	EntityProduct  EntityType = "PRODUCT"
)

// AuditLog is immutable once inserted; insertion failures are treated
// as transaction failures, never silently dropped.
type AuditLog struct {
	ID         uuid.UUID
	Operation  AuditOperation
	EntityType EntityType
	EntityID   string
	Details    string
	Timestamp  time.Time
}

// MaxDetailsLen is the hard cap on an AuditLog's Details field.
const MaxDetailsLen = 1000
