package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ordercore/order-service/internal/models"
)

// OrderService orchestrates order placement, retrieval, and
// cancellation. It is the sole entry point the HTTP handlers call into
// for order-lifecycle operations.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest, idempotencyKey string) (*CreateOrderResult, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, email string, pageOffset, pageSize int) (*OrderPage, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) error
}

// PaymentService orchestrates payment authorization and void with
// bounded retry.
type PaymentService interface {
	AuthorizePayment(ctx context.Context, orderID uuid.UUID) error

	// VoidPaymentTx runs the void within tx, the same transaction the
	// caller's order cancellation is using, so a void that fails rolls
	// the cancellation back with it.
	VoidPaymentTx(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID) error
}

// CreateOrderResult reports whether CreateOrder produced a new order or
// replayed an existing one via the idempotency registry.
type CreateOrderResult struct {
	Order        *models.Order
	AlreadyExisted bool
}

// OrderPage is a page of a customer's orders.
type OrderPage struct {
	Content      []*models.Order
	Page         int
	Size         int
	TotalElements int
	TotalPages   int
}
