package models

import "errors"

// Repository-level sentinel errors. Services translate these into
// apperr.Error kinds; repositories never import apperr themselves so
// that the storage layer stays independent of the HTTP error taxonomy.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrOptimisticLock      = errors.New("optimistic lock failure: version mismatch")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrIdempotencyConflict = errors.New("idempotency key already recorded")
)
