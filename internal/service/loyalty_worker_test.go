package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ordercore/order-service/internal/mocks"
	"github.com/ordercore/order-service/internal/models"
	"github.com/ordercore/order-service/internal/observability"
	"github.com/ordercore/order-service/internal/repository"
)

type testLoyaltyWorkerSetup struct {
	worker      *LoyaltyWorker
	orders      *mocks.MockOrderRepository
	customers   *mocks.MockCustomerRepository
	idempotency *mocks.MockIdempotencyRepository
	audit       *mocks.MockAuditRepository
	outbox      *mocks.MockOutboxRepository
	mockPool    pgxmock.PgxPoolIface
	ctrl        *gomock.Controller
}

func setupLoyaltyWorker(t *testing.T, now time.Time) *testLoyaltyWorkerSetup {
	ctrl := gomock.NewController(t)

	orders := mocks.NewMockOrderRepository(ctrl)
	customers := mocks.NewMockCustomerRepository(ctrl)
	idempotency := mocks.NewMockIdempotencyRepository(ctrl)
	audit := mocks.NewMockAuditRepository(ctrl)
	outbox := mocks.NewMockOutboxRepository(ctrl)

	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetricsWithRegistry(registry)

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)

	store := &repository.Store{
		Pool:        mockPool,
		Logger:      logger,
		Orders:      orders,
		Customers:   customers,
		Idempotency: idempotency,
		Audit:       audit,
		Outbox:      outbox,
	}

	worker := NewLoyaltyWorker(store, DefaultLoyaltyConfig(), metrics, logger)
	worker.clock = func() time.Time { return now }

	return &testLoyaltyWorkerSetup{
		worker:      worker,
		orders:      orders,
		customers:   customers,
		idempotency: idempotency,
		audit:       audit,
		outbox:      outbox,
		mockPool:    mockPool,
		ctrl:        ctrl,
	}
}

func (s *testLoyaltyWorkerSetup) cleanup() {
	s.ctrl.Finish()
	s.mockPool.Close()
}

func TestLoyaltyWorker_Tick_CreditsPaidOrder(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	setup := setupLoyaltyWorker(t, now)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	customerID := uuid.New()
	order := &models.Order{ID: orderID, CustomerID: customerID, Status: models.OrderStatusPaid, Total: decimal.NewFromInt(42)}
	key := models.LoyaltyIdempotencyKey(orderID.String())

	setup.orders.EXPECT().
		PaidSince(gomock.Any(), now.Add(-setup.worker.cfg.LookbackWindow), uuid.Nil, setup.worker.cfg.BatchSize).
		Return([]*models.Order{order}, nil)
	setup.orders.EXPECT().
		PaidSince(gomock.Any(), now.Add(-setup.worker.cfg.LookbackWindow), orderID, setup.worker.cfg.BatchSize).
		Return(nil, nil)

	setup.mockPool.ExpectBegin()
	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), key, models.OperationLoyalty).
		Return(true, nil, nil)
	setup.orders.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), orderID).Return(order, nil)
	setup.customers.EXPECT().
		GetByID(gomock.Any(), gomock.Any(), customerID).
		Return(&models.Customer{ID: customerID, LoyaltyPoints: 10}, nil)
	setup.customers.EXPECT().
		AddLoyaltyPoints(gomock.Any(), gomock.Any(), customerID, 42).
		Return(52, nil)
	setup.idempotency.EXPECT().
		Complete(gomock.Any(), gomock.Any(), key, customerID.String(), "42").
		Return(nil)
	setup.audit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	setup.outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	setup.mockPool.ExpectCommit()

	credited, err := setup.worker.Tick(ctx, setup.worker.cfg.LookbackWindow)

	require.NoError(t, err)
	assert.Equal(t, 1, credited)
}

func TestLoyaltyWorker_Tick_AlreadyProcessedSkipped(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	setup := setupLoyaltyWorker(t, now)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	order := &models.Order{ID: orderID, Status: models.OrderStatusPaid, Total: decimal.NewFromInt(42)}
	key := models.LoyaltyIdempotencyKey(orderID.String())

	setup.orders.EXPECT().
		PaidSince(gomock.Any(), gomock.Any(), uuid.Nil, setup.worker.cfg.BatchSize).
		Return([]*models.Order{order}, nil)
	setup.orders.EXPECT().
		PaidSince(gomock.Any(), gomock.Any(), orderID, setup.worker.cfg.BatchSize).
		Return(nil, nil)

	setup.mockPool.ExpectBegin()
	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), key, models.OperationLoyalty).
		Return(false, &models.IdempotencyRecord{}, nil)
	setup.mockPool.ExpectCommit()

	credited, err := setup.worker.Tick(ctx, setup.worker.cfg.LookbackWindow)

	require.NoError(t, err)
	assert.Equal(t, 0, credited)
}

func TestLoyaltyWorker_Tick_CapsAtMaxPoints(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	setup := setupLoyaltyWorker(t, now)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	customerID := uuid.New()
	order := &models.Order{ID: orderID, CustomerID: customerID, Status: models.OrderStatusPaid, Total: decimal.NewFromInt(100)}
	key := models.LoyaltyIdempotencyKey(orderID.String())

	setup.orders.EXPECT().
		PaidSince(gomock.Any(), gomock.Any(), uuid.Nil, setup.worker.cfg.BatchSize).
		Return([]*models.Order{order}, nil)
	setup.orders.EXPECT().
		PaidSince(gomock.Any(), gomock.Any(), orderID, setup.worker.cfg.BatchSize).
		Return(nil, nil)

	setup.mockPool.ExpectBegin()
	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), key, models.OperationLoyalty).
		Return(true, nil, nil)
	setup.orders.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), orderID).Return(order, nil)
	// Customer already at 480/500: only 20 points of headroom remain,
	// though the order's raw total would earn 100.
	setup.customers.EXPECT().
		GetByID(gomock.Any(), gomock.Any(), customerID).
		Return(&models.Customer{ID: customerID, LoyaltyPoints: 480}, nil)
	setup.customers.EXPECT().
		AddLoyaltyPoints(gomock.Any(), gomock.Any(), customerID, 20).
		Return(500, nil)
	setup.idempotency.EXPECT().
		Complete(gomock.Any(), gomock.Any(), key, customerID.String(), "20").
		Return(nil)
	setup.audit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	setup.outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	setup.mockPool.ExpectCommit()

	credited, err := setup.worker.Tick(ctx, setup.worker.cfg.LookbackWindow)

	require.NoError(t, err)
	assert.Equal(t, 1, credited)
}

func TestLoyaltyWorker_Tick_AlreadyAtCapSkipsCredit(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	setup := setupLoyaltyWorker(t, now)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	customerID := uuid.New()
	order := &models.Order{ID: orderID, CustomerID: customerID, Status: models.OrderStatusPaid, Total: decimal.NewFromInt(100)}
	key := models.LoyaltyIdempotencyKey(orderID.String())

	setup.orders.EXPECT().
		PaidSince(gomock.Any(), gomock.Any(), uuid.Nil, setup.worker.cfg.BatchSize).
		Return([]*models.Order{order}, nil)
	setup.orders.EXPECT().
		PaidSince(gomock.Any(), gomock.Any(), orderID, setup.worker.cfg.BatchSize).
		Return(nil, nil)

	setup.mockPool.ExpectBegin()
	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), key, models.OperationLoyalty).
		Return(true, nil, nil)
	setup.orders.EXPECT().GetByIDForUpdate(gomock.Any(), gomock.Any(), orderID).Return(order, nil)
	setup.customers.EXPECT().
		GetByID(gomock.Any(), gomock.Any(), customerID).
		Return(&models.Customer{ID: customerID, LoyaltyPoints: 500}, nil)
	setup.idempotency.EXPECT().
		Complete(gomock.Any(), gomock.Any(), key, customerID.String(), "0").
		Return(nil)
	setup.mockPool.ExpectCommit()

	credited, err := setup.worker.Tick(ctx, setup.worker.cfg.LookbackWindow)

	require.NoError(t, err)
	assert.Equal(t, 0, credited)
}

func TestLoyaltyWorker_Tick_SkipsOverlapping(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	setup := setupLoyaltyWorker(t, now)
	defer setup.cleanup()

	setup.worker.running <- struct{}{}
	defer func() { <-setup.worker.running }()

	credited, err := setup.worker.Tick(context.Background(), setup.worker.cfg.LookbackWindow)

	require.NoError(t, err)
	assert.Equal(t, 0, credited)
}
