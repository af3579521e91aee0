package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ordercore/order-service/internal/apperr"
	"github.com/ordercore/order-service/internal/gateway"
	"github.com/ordercore/order-service/internal/models"
	"github.com/ordercore/order-service/internal/observability"
	"github.com/ordercore/order-service/internal/repository"
	"github.com/ordercore/order-service/internal/retry"
)

// PaymentServiceImpl implements PaymentService, orchestrating
// authorize/void against the external gateway with a bounded retry
// policy. Authorization holds no database transaction open across the
// outbound HTTPS call: one short transaction reserves the payment row,
// the gateway call happens outside any transaction, and a second short
// transaction persists the outcome. Void runs inside the caller's
// transaction, which stays open across the gateway call.
type PaymentServiceImpl struct {
	store   *repository.Store
	gateway gateway.Gateway
	policy  retry.Policy
	metrics *observability.Metrics
	logger  zerolog.Logger
}

// NewPaymentService wires a PaymentServiceImpl.
func NewPaymentService(store *repository.Store, gw gateway.Gateway, policy retry.Policy, metrics *observability.Metrics, logger zerolog.Logger) PaymentService {
	return &PaymentServiceImpl{
		store:   store,
		gateway: gw,
		policy:  policy,
		metrics: metrics,
		logger:  logger.With().Str("component", "payment_service").Logger(),
	}
}

// AuthorizePayment reserves a PENDING payment for orderID, calls the
// gateway with bounded retry, and persists the outcome.
func (s *PaymentServiceImpl) AuthorizePayment(ctx context.Context, orderID uuid.UUID) error {
	payment, order, err := s.reservePayment(ctx, orderID)
	if err != nil {
		return err
	}

	var outcome gateway.CallResult
	attempts := 0
	retry.Do(ctx, s.policy, func(err error) bool { return true }, func(ctx context.Context) error {
		attempts++
		outcome = s.gateway.Authorize(ctx, order.Total.StringFixed(2), "USD", "CARD")
		if outcome.Outcome == gateway.OutcomeRetryable {
			return fmt.Errorf("retryable gateway error: %s", outcome.Message)
		}
		return nil
	})
	if attempts > 1 {
		s.metrics.PaymentRetriesTotal.Add(float64(attempts - 1))
	}

	switch outcome.Outcome {
	case gateway.OutcomeSuccess:
		s.metrics.PaymentsAuthorizedTotal.WithLabelValues("success").Inc()
		return s.commitAuthorizeSuccess(ctx, payment, order, outcome.AuthorizationID, attempts)
	case gateway.OutcomeTerminal:
		s.metrics.PaymentsAuthorizedTotal.WithLabelValues("failed").Inc()
		return s.commitAuthorizeFailure(ctx, payment, outcome.Message, attempts, apperr.PaymentFailed("%s", outcome.Message))
	default: // retryable, exhausted
		s.metrics.PaymentsAuthorizedTotal.WithLabelValues("unavailable").Inc()
		return s.commitAuthorizeFailure(ctx, payment, outcome.Message, attempts, apperr.PaymentUnavailable("payment gateway unavailable after retries"))
	}
}

// reservePayment validates order state and creates or reuses the
// PENDING payment row for the order, in its own short transaction.
func (s *PaymentServiceImpl) reservePayment(ctx context.Context, orderID uuid.UUID) (*models.Payment, *models.Order, error) {
	var payment *models.Payment
	var order *models.Order

	err := s.store.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		order, err = s.store.Orders.GetByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusPending {
			return apperr.BusinessValidation("order %s is not PENDING (status=%s)", orderID, order.Status)
		}

		payment, err = s.store.Payments.GetByOrderID(ctx, tx, orderID)
		if err != nil {
			if err != models.ErrPaymentNotFound {
				return err
			}
			payment = &models.Payment{
				OrderID: orderID,
				Status:  models.PaymentStatusPending,
				Amount:  order.Total,
			}
			if err := s.store.Payments.Create(ctx, tx, payment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == models.ErrOrderNotFound {
			return nil, nil, apperr.NotFound("order %s not found", orderID)
		}
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, nil, err
		}
		return nil, nil, apperr.Internal(err)
	}
	return payment, order, nil
}

func (s *PaymentServiceImpl) commitAuthorizeSuccess(ctx context.Context, payment *models.Payment, order *models.Order, authorizationID string, attempts int) error {
	return s.store.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		authID := authorizationID
		if err := s.store.Payments.UpdateResult(ctx, tx, payment.ID, models.PaymentStatusAuthorized, &authID, nil, attempts-1); err != nil {
			return err
		}
		if err := s.store.Orders.UpdateStatus(ctx, tx, order.ID, models.OrderStatusPaid, order.Version); err != nil {
			return err
		}
		if err := s.store.Audit.Record(ctx, tx, &models.AuditLog{
			Operation:  models.AuditPaymentAuthorized,
			EntityType: models.EntityPayment,
			EntityID:   payment.ID.String(),
			Details:    fmt.Sprintf("order=%s authorization_id=%s attempts=%d", order.ID, authorizationID, attempts),
		}); err != nil {
			return err
		}
		return s.store.Outbox.Create(ctx, tx, &models.OutboxEvent{
			AggregateID:   order.ID,
			AggregateType: models.AggregateTypeOrder,
			EventType:     models.EventTypePaymentAuthorized,
			EventPayload: map[string]interface{}{
				"order_id":         order.ID.String(),
				"payment_id":       payment.ID.String(),
				"authorization_id": authorizationID,
			},
			MaxRetries: outboxMaxRetries,
		})
	})
}

func (s *PaymentServiceImpl) commitAuthorizeFailure(ctx context.Context, payment *models.Payment, reason string, attempts int, surfaced error) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		failureReason := reason
		return s.store.Payments.UpdateResult(ctx, tx, payment.ID, models.PaymentStatusFailed, nil, &failureReason, attempts-1)
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return surfaced
}

// VoidPaymentTx voids an authorized payment, run inside the caller's
// cancellation transaction. Terminal failure rolls back the enclosing
// transaction by propagating an error.
func (s *PaymentServiceImpl) VoidPaymentTx(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID) error {
	payment, err := s.store.Payments.GetByID(ctx, tx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status != models.PaymentStatusAuthorized {
		return apperr.BusinessValidation("payment %s is not AUTHORIZED (status=%s)", paymentID, payment.Status)
	}
	if payment.ExternalAuthorizationID == nil {
		return apperr.Internal(fmt.Errorf("authorized payment %s missing external_authorization_id", paymentID))
	}

	attempts := 0
	var outcome gateway.CallResult
	retry.Do(ctx, s.policy, func(err error) bool { return true }, func(ctx context.Context) error {
		attempts++
		outcome = s.gateway.Void(ctx, *payment.ExternalAuthorizationID)
		if outcome.Outcome == gateway.OutcomeRetryable {
			return fmt.Errorf("retryable gateway error: %s", outcome.Message)
		}
		return nil
	})
	if attempts > 1 {
		s.metrics.PaymentRetriesTotal.Add(float64(attempts - 1))
	}

	switch outcome.Outcome {
	case gateway.OutcomeSuccess:
		s.metrics.PaymentsVoidedTotal.WithLabelValues("success").Inc()
		if err := s.store.Payments.MarkVoided(ctx, tx, payment.ID); err != nil {
			return err
		}
		if err := s.store.Audit.Record(ctx, tx, &models.AuditLog{
			Operation:  models.AuditPaymentVoided,
			EntityType: models.EntityPayment,
			EntityID:   payment.ID.String(),
			Details:    fmt.Sprintf("voided authorization_id=%s attempts=%d", *payment.ExternalAuthorizationID, attempts),
		}); err != nil {
			return err
		}
		return s.store.Outbox.Create(ctx, tx, &models.OutboxEvent{
			AggregateID:   payment.OrderID,
			AggregateType: models.AggregateTypeOrder,
			EventType:     models.EventTypePaymentVoided,
			EventPayload: map[string]interface{}{
				"order_id":   payment.OrderID.String(),
				"payment_id": payment.ID.String(),
			},
			MaxRetries: outboxMaxRetries,
		})
	default:
		s.metrics.PaymentsVoidedTotal.WithLabelValues("unavailable").Inc()
		return apperr.PaymentUnavailable("void failed for payment %s: %s", paymentID, outcome.Message)
	}
}

