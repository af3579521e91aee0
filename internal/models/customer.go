package models

import "github.com/google/uuid"

// Customer is created lazily on first order placement and otherwise
// owned by the customer-profile collaborator.
type Customer struct {
	ID            uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	LoyaltyPoints int
}

// LastNamePlaceholder is used when deriving a Customer from an order
// request; the core has no real name data at placement time.
const LastNamePlaceholder = "Customer"
