package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ordercore/order-service/internal/models"
	"github.com/ordercore/order-service/internal/observability"
	"github.com/ordercore/order-service/internal/repository"
)

// LoyaltyConfig carries the loyalty worker's tunables.
type LoyaltyConfig struct {
	PointsPerDollar decimal.Decimal
	MaxPoints       int
	TickInterval    time.Duration
	LookbackWindow  time.Duration
	ManualLookback  time.Duration
	BatchSize       int
}

// DefaultLoyaltyConfig returns the worker's default tunables.
func DefaultLoyaltyConfig() LoyaltyConfig {
	return LoyaltyConfig{
		PointsPerDollar: decimal.NewFromInt(1),
		MaxPoints:       500,
		TickInterval:    30 * time.Minute,
		LookbackWindow:  60 * time.Minute,
		ManualLookback:  24 * time.Hour,
		BatchSize:       50,
	}
}

// LoyaltyWorker periodically credits loyalty points to customers whose
// orders transitioned to PAID within the lookback window. Unlike the
// outbox publisher it never processes the same order twice: the
// idempotency registry's unique key on
// models.LoyaltyIdempotencyKey(orderID) is the serialization point, the
// same pattern the order creation path uses.
//
// The clock is injected rather than read from time.Now() directly so
// tests can control the lookback window precisely.
type LoyaltyWorker struct {
	store   *repository.Store
	cfg     LoyaltyConfig
	metrics *observability.Metrics
	logger  zerolog.Logger
	clock   func() time.Time

	// running guards against overlapping ticks: the worker's tick is
	// serial, and a tick still in flight causes the next one to be
	// suppressed rather than queued.
	running chan struct{}
}

// NewLoyaltyWorker wires a LoyaltyWorker.
func NewLoyaltyWorker(store *repository.Store, cfg LoyaltyConfig, metrics *observability.Metrics, logger zerolog.Logger) *LoyaltyWorker {
	return &LoyaltyWorker{
		store:   store,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger.With().Str("component", "loyalty_worker").Logger(),
		clock:   time.Now,
		running: make(chan struct{}, 1),
	}
}

// Run ticks every cfg.TickInterval until ctx is cancelled, processing
// the automatic (60-minute) lookback window on each tick.
func (w *LoyaltyWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("loyalty worker stopping")
			return
		case <-ticker.C:
			if _, err := w.Tick(ctx, w.cfg.LookbackWindow); err != nil {
				w.logger.Error().Err(err).Msg("loyalty tick failed")
			}
		}
	}
}

// Tick processes one pass over the lookback window and returns the
// number of orders credited. A manual trigger passes
// cfg.ManualLookback (24h) instead of the automatic 60-minute window.
// Overlapping ticks are suppressed: a tick already in flight causes
// this call to return immediately with zero processed.
func (w *LoyaltyWorker) Tick(ctx context.Context, lookback time.Duration) (int, error) {
	select {
	case w.running <- struct{}{}:
	default:
		w.logger.Warn().Msg("loyalty tick skipped, previous tick still running")
		return 0, nil
	}
	defer func() { <-w.running }()

	since := w.clock().Add(-lookback)
	afterID := uuid.Nil
	credited := 0

	for {
		orders, err := w.store.Orders.PaidSince(ctx, since, afterID, w.cfg.BatchSize)
		if err != nil {
			return credited, fmt.Errorf("query paid orders: %w", err)
		}
		if len(orders) == 0 {
			break
		}

		for _, order := range orders {
			afterID = order.ID
			ok, err := w.processOrder(ctx, order)
			if err != nil {
				w.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("loyalty processing failed for order")
				continue
			}
			if ok {
				credited++
			}
		}
	}

	w.logger.Info().Int("credited", credited).Dur("lookback", lookback).Msg("loyalty tick complete")
	return credited, nil
}

// processOrder credits loyalty points for a single order in its own
// transaction, so one bad order does not poison the rest of the batch.
// It returns whether points were actually credited (false for an
// already-processed, non-PAID, or zero-points order).
func (w *LoyaltyWorker) processOrder(ctx context.Context, order *models.Order) (bool, error) {
	credited := false
	var deltaApplied int64

	err := w.store.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		key := models.LoyaltyIdempotencyKey(order.ID.String())
		reserved, _, err := w.store.Idempotency.Reserve(ctx, tx, key, models.OperationLoyalty)
		if err != nil {
			return err
		}
		if !reserved {
			return nil
		}

		fresh, err := w.store.Orders.GetByIDForUpdate(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if fresh.Status != models.OrderStatusPaid {
			return nil
		}

		rawPoints := fresh.Total.Mul(w.cfg.PointsPerDollar).Floor().IntPart()
		if rawPoints <= 0 {
			return nil
		}

		customer, err := w.store.Customers.GetByID(ctx, tx, fresh.CustomerID)
		if err != nil {
			return err
		}

		headroom := int64(w.cfg.MaxPoints - customer.LoyaltyPoints)
		delta := rawPoints
		if delta > headroom {
			delta = headroom
		}
		if delta <= 0 {
			return w.store.Idempotency.Complete(ctx, tx, key, customer.ID.String(), "0")
		}

		newBalance, err := w.store.Customers.AddLoyaltyPoints(ctx, tx, customer.ID, int(delta))
		if err != nil {
			return err
		}

		if err := w.store.Idempotency.Complete(ctx, tx, key, customer.ID.String(), fmt.Sprintf("%d", delta)); err != nil {
			return err
		}

		if err := w.store.Audit.Record(ctx, tx, &models.AuditLog{
			Operation:  models.AuditLoyaltyPointsAdded,
			EntityType: models.EntityCustomer,
			EntityID:   customer.ID.String(),
			Details:    fmt.Sprintf("order=%s delta=%d new_balance=%d cap=%d", fresh.ID, delta, newBalance, w.cfg.MaxPoints),
		}); err != nil {
			return err
		}

		if err := w.store.Outbox.Create(ctx, tx, &models.OutboxEvent{
			AggregateID:   customer.ID,
			AggregateType: models.AggregateTypeCustomer,
			EventType:     models.EventTypeLoyaltyCredited,
			EventPayload: map[string]interface{}{
				"customer_id": customer.ID.String(),
				"order_id":    fresh.ID.String(),
				"delta":       delta,
				"new_balance": newBalance,
			},
			MaxRetries: 5,
		}); err != nil {
			return err
		}

		credited = true
		deltaApplied = delta
		return nil
	})
	if err != nil {
		return false, err
	}

	if credited {
		w.metrics.LoyaltyPointsCreditedTotal.Add(float64(deltaApplied))
		w.metrics.LoyaltyOrdersProcessedTotal.WithLabelValues("credited").Inc()
	}
	return credited, nil
}
