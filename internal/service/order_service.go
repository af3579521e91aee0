package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ordercore/order-service/internal/apperr"
	"github.com/ordercore/order-service/internal/discount"
	"github.com/ordercore/order-service/internal/models"
	"github.com/ordercore/order-service/internal/observability"
	"github.com/ordercore/order-service/internal/repository"
)

const (
	defaultPageSize  = 10
	maxPageSize      = 100
	minOrderTotal    = "0.01"
	outboxMaxRetries = 5
)

// OrderServiceImpl implements OrderService: order placement,
// retrieval, and cancellation, orchestrating the discount calculator,
// the store, the audit sink, and the idempotency registry.
type OrderServiceImpl struct {
	store    *repository.Store
	discount *discount.Calculator
	payments PaymentService
	metrics  *observability.Metrics
	logger   zerolog.Logger
}

// NewOrderService wires an OrderServiceImpl.
func NewOrderService(store *repository.Store, calc *discount.Calculator, payments PaymentService, metrics *observability.Metrics, logger zerolog.Logger) OrderService {
	return &OrderServiceImpl{
		store:    store,
		discount: calc,
		payments: payments,
		metrics:  metrics,
		logger:   logger.With().Str("component", "order_service").Logger(),
	}
}

// CreateOrder validates the request, prices it, reserves stock, and
// persists the order, replaying a prior result if idempotencyKey has
// already been recorded.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, idempotencyKey string) (*CreateOrderResult, error) {
	if idempotencyKey == "" {
		return nil, apperr.Validation("Idempotency-Key is required")
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}

	var result CreateOrderResult
	err := s.store.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		reserved, existing, err := s.store.Idempotency.Reserve(ctx, tx, idempotencyKey, models.OperationOrderCreate)
		if err != nil {
			return err
		}
		if !reserved {
			existingOrderID, err := uuid.Parse(existing.ResultEntityID)
			if err != nil {
				return apperr.Internal(fmt.Errorf("parse cached order id: %w", err))
			}
			order, err := s.store.Orders.GetByID(ctx, existingOrderID)
			if err != nil {
				return err
			}
			result = CreateOrderResult{Order: order, AlreadyExisted: true}
			return nil
		}

		customer, err := s.store.Customers.FindOrCreate(ctx, tx, req.CustomerEmail, deriveFirstName(req.CustomerEmail))
		if err != nil {
			return apperr.Internal(fmt.Errorf("find or create customer: %w", err))
		}

		items, subtotal, err := s.reserveLineItems(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		discountAmount := s.discount.Discount(subtotal)
		total := subtotal.Sub(discountAmount)
		minTotal, _ := decimal.NewFromString(minOrderTotal)
		if total.LessThan(minTotal) {
			return apperr.BusinessValidation("order total %s is below the minimum of %s", total, minOrderTotal)
		}

		order := &models.Order{
			CustomerID:     customer.ID,
			Status:         models.OrderStatusPending,
			IdempotencyKey: &idempotencyKey,
			Subtotal:       subtotal,
			DiscountAmount: discountAmount,
			Total:          total,
			Items:          items,
			CustomerEmail:  customer.Email,
		}
		if err := s.store.Orders.Create(ctx, tx, order); err != nil {
			return apperr.Internal(fmt.Errorf("create order: %w", err))
		}

		if err := s.store.Idempotency.Complete(ctx, tx, idempotencyKey, order.ID.String(), ""); err != nil {
			return apperr.Internal(fmt.Errorf("complete idempotency record: %w", err))
		}

		if err := s.store.Audit.Record(ctx, tx, &models.AuditLog{
			Operation:  models.AuditOrderCreated,
			EntityType: models.EntityOrder,
			EntityID:   order.ID.String(),
			Details:    fmt.Sprintf("customer=%s items=%d total=%s", customer.ID, len(order.Items), order.Total),
		}); err != nil {
			return apperr.Internal(fmt.Errorf("record audit log: %w", err))
		}

		if err := s.store.Outbox.Create(ctx, tx, &models.OutboxEvent{
			AggregateID:   order.ID,
			AggregateType: models.AggregateTypeOrder,
			EventType:     models.EventTypeOrderCreated,
			EventPayload: map[string]interface{}{
				"order_id":    order.ID.String(),
				"customer_id": customer.ID.String(),
				"total":       order.Total.StringFixed(2),
			},
			MaxRetries: outboxMaxRetries,
		}); err != nil {
			return apperr.Internal(fmt.Errorf("record outbox event: %w", err))
		}

		result = CreateOrderResult{Order: order, AlreadyExisted: false}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyExisted {
		s.metrics.OrdersCreatedTotal.WithLabelValues("idempotent_hit").Inc()
	} else {
		s.metrics.OrdersCreatedTotal.WithLabelValues("new").Inc()
		s.logger.Info().Str("order_id", result.Order.ID.String()).Msg("order created")
	}
	return &result, nil
}

// reserveLineItems validates each requested line against the product
// catalog and atomically decrements stock. Stock
// decrement uses the atomic conditional UPDATE in ProductRepository
// rather than a read-check-decrement loop: the single statement is
// already serializable with respect to concurrent decrements on the
// same row, so no application-level retry is needed here.
func (s *OrderServiceImpl) reserveLineItems(ctx context.Context, tx pgx.Tx, requested []models.LineItemRequest) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(requested))
	subtotal := decimal.Zero

	for _, li := range requested {
		product, err := s.store.Products.GetBySKU(ctx, tx, li.ProductSKU)
		if err != nil {
			if err == models.ErrProductNotFound {
				return nil, decimal.Zero, apperr.NotFound("product %s not found", li.ProductSKU)
			}
			return nil, decimal.Zero, apperr.Internal(err)
		}
		if !product.Active {
			return nil, decimal.Zero, apperr.BusinessValidation("product %s is not active", li.ProductSKU)
		}

		if err := s.store.Products.DecrementStock(ctx, tx, product.ID, li.Quantity); err != nil {
			if err == models.ErrInsufficientStock {
				return nil, decimal.Zero, apperr.BusinessValidation("insufficient stock for product %s", li.ProductSKU)
			}
			return nil, decimal.Zero, apperr.Internal(err)
		}

		lineSubtotal := product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductSKU:  product.SKU,
			ProductName: product.Name,
			Quantity:    li.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	return items, subtotal, nil
}

// deriveFirstName takes the alphabetic characters of an email's local
// part as a placeholder first name, first letter upper-cased, e.g.
// "jane.doe42@example.com" -> "Janedoe".
func deriveFirstName(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	var b strings.Builder
	for _, r := range local {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Customer"
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// GetOrder returns a single order by id.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders.GetByID(ctx, orderID)
	if err != nil {
		if err == models.ErrOrderNotFound {
			return nil, apperr.NotFound("order %s not found", orderID)
		}
		return nil, apperr.Internal(err)
	}
	payment, err := s.store.Payments.GetByOrderID(ctx, s.store.Pool, orderID)
	if err == nil {
		order.Payment = payment
	} else if err != models.ErrPaymentNotFound {
		return nil, apperr.Internal(err)
	}

	customer, err := s.store.Customers.GetByID(ctx, s.store.Pool, order.CustomerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	order.CustomerEmail = customer.Email

	return order, nil
}

// ListCustomerOrders returns a page of a customer's orders. Page
// numbers are 0-based; an unknown customer yields an empty page rather
// than NotFound.
func (s *OrderServiceImpl) ListCustomerOrders(ctx context.Context, email string, page, pageSize int) (*OrderPage, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 0 {
		page = 0
	}

	customer, err := s.store.Customers.Lookup(ctx, email)
	if err != nil {
		if err == models.ErrCustomerNotFound {
			return &OrderPage{Content: []*models.Order{}, Page: page, Size: pageSize, TotalElements: 0, TotalPages: 0}, nil
		}
		return nil, apperr.Internal(err)
	}

	orders, total, err := s.store.Orders.GetByCustomerID(ctx, customer.ID, pageSize, page*pageSize)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, o := range orders {
		o.CustomerEmail = customer.Email
	}

	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &OrderPage{
		Content:       orders,
		Page:          page,
		Size:          pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// CancelOrder transitions a PENDING or PAID order to CANCELLED,
// restocking its items and voiding any authorized payment.
func (s *OrderServiceImpl) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		order, err := s.store.Orders.GetByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if err == models.ErrOrderNotFound {
				return apperr.NotFound("order %s not found", orderID)
			}
			return apperr.Internal(err)
		}
		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusPaid {
			return apperr.BusinessValidation("order %s cannot be cancelled from status %s", orderID, order.Status)
		}

		for _, item := range order.Items {
			if err := s.store.Products.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return apperr.Internal(fmt.Errorf("restock product %s: %w", item.ProductSKU, err))
			}
		}

		payment, err := s.store.Payments.GetByOrderID(ctx, tx, orderID)
		hadPayment := "false"
		if err == nil {
			hadPayment = "true"
			if payment.Status == models.PaymentStatusAuthorized {
				if err := s.payments.VoidPaymentTx(ctx, tx, payment.ID); err != nil {
					return err
				}
			}
		} else if err != models.ErrPaymentNotFound {
			return apperr.Internal(err)
		}

		if err := s.store.Orders.UpdateStatus(ctx, tx, orderID, models.OrderStatusCancelled, order.Version); err != nil {
			if err == models.ErrOptimisticLock {
				return apperr.Conflict("order %s was modified concurrently", orderID)
			}
			return apperr.Internal(err)
		}

		if err := s.store.Audit.Record(ctx, tx, &models.AuditLog{
			Operation:  models.AuditOrderCancelled,
			EntityType: models.EntityOrder,
			EntityID:   orderID.String(),
			Details:    fmt.Sprintf("had_payment=%s", hadPayment),
		}); err != nil {
			return apperr.Internal(err)
		}

		if err := s.store.Outbox.Create(ctx, tx, &models.OutboxEvent{
			AggregateID:   orderID,
			AggregateType: models.AggregateTypeOrder,
			EventType:     models.EventTypeOrderCancelled,
			EventPayload: map[string]interface{}{
				"order_id":    orderID.String(),
				"had_payment": hadPayment,
			},
			MaxRetries: outboxMaxRetries,
		}); err != nil {
			return apperr.Internal(err)
		}

		s.metrics.OrdersCancelledTotal.WithLabelValues(hadPayment).Inc()
		return nil
	})
	return err
}
