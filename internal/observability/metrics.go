package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for order-service.
type Metrics struct {
	OrdersCreatedTotal   *prometheus.CounterVec
	OrdersCancelledTotal *prometheus.CounterVec

	PaymentsAuthorizedTotal *prometheus.CounterVec
	PaymentsVoidedTotal     *prometheus.CounterVec
	PaymentRetriesTotal     prometheus.Counter

	LoyaltyPointsCreditedTotal prometheus.Counter
	LoyaltyOrdersProcessedTotal *prometheus.CounterVec

	OrderPlacementDuration  *prometheus.HistogramVec
	PaymentGatewayDuration  *prometheus.HistogramVec

	DatabaseOperationDuration *prometheus.HistogramVec
	DatabaseErrors            *prometheus.CounterVec

	OutboxEventsPublished *prometheus.CounterVec
	OutboxEventsFailed    *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics with the
// default registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates metrics with a custom registry, useful
// for tests that don't want to collide with the default registry.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total number of orders created",
			},
			[]string{"outcome"}, // new, idempotent_hit
		),
		OrdersCancelledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "Total number of orders cancelled",
			},
			[]string{"had_payment"},
		),
		PaymentsAuthorizedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_authorized_total",
				Help: "Total number of payment authorizations by outcome",
			},
			[]string{"outcome"}, // success, failed, unavailable
		),
		PaymentsVoidedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_voided_total",
				Help: "Total number of payment voids by outcome",
			},
			[]string{"outcome"},
		),
		PaymentRetriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_gateway_retries_total",
				Help: "Total number of retried payment gateway calls",
			},
		),
		LoyaltyPointsCreditedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_points_credited_total",
				Help: "Total loyalty points credited across all customers",
			},
		),
		LoyaltyOrdersProcessedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loyalty_orders_processed_total",
				Help: "Total number of orders processed by the loyalty worker",
			},
			[]string{"outcome"}, // only "credited" is recorded; skipped orders are not counted
		),
		OrderPlacementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "order_placement_duration_seconds",
				Help:    "Duration of order placement operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		PaymentGatewayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_gateway_call_duration_seconds",
				Help:    "Duration of outbound payment gateway calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"}, // authorize, void
		),
		DatabaseOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "database_operation_duration_seconds",
				Help:    "Duration of database operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DatabaseErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation"},
		),
		OutboxEventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outbox_events_published_total",
				Help: "Total number of outbox events successfully published",
			},
			[]string{"event_type"},
		),
		OutboxEventsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outbox_events_failed_total",
				Help: "Total number of outbox events failed to publish",
			},
			[]string{"event_type"},
		),
	}
}
