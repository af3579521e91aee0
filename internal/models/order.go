package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an Order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo reports whether the order lifecycle allows moving
// from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch {
	case s == OrderStatusPending && next == OrderStatusPaid:
		return true
	case s == OrderStatusPending && next == OrderStatusCancelled:
		return true
	case s == OrderStatusPaid && next == OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order is the aggregate root for a placed order.
type Order struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	Status         OrderStatus
	IdempotencyKey *string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64

	Items   []OrderItem
	Payment *Payment

	// CustomerEmail is populated by the service layer for response
	// rendering (GetOrder, ListCustomerOrders and a newly placed order;
	// an idempotent CreateOrder replay leaves it empty); it is never read
	// from or written to the orders table directly (the column of record
	// is customers.email).
	CustomerEmail string
}

// OrderItem is a line item snapshot at order-creation time. Immutable
// after the order is created.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductSKU  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// LineItemRequest is one requested SKU/quantity pair from a CreateOrder
// request.
type LineItemRequest struct {
	ProductSKU string `validate:"required,max=50"`
	Quantity   int    `validate:"required,min=1"`
}

// CreateOrderRequest is the validated input to OrderService.CreateOrder.
type CreateOrderRequest struct {
	CustomerEmail string            `validate:"required,email"`
	Items         []LineItemRequest `validate:"required,min=1,dive"`
}
