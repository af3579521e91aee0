package models

import "time"

// Idempotency operation types.
const (
	OperationOrderCreate = "ORDER_CREATE"
	OperationLoyalty     = "LOYALTY"
)

// IdempotencyRecord is inserted by Reserve with empty results, which
// Complete fills in within the same transaction; it is not changed
// after that. The unique constraint on Key is the serialization point
// for concurrent creators.
type IdempotencyRecord struct {
	Key             string
	OperationType   string
	ResultEntityID  string
	ResultData      string
	CreatedAt       time.Time
}

// LoyaltyIdempotencyKey builds the per-order key used to guarantee a
// PAID order is credited at most once.
func LoyaltyIdempotencyKey(orderID string) string {
	return "LOYALTY_" + orderID
}
