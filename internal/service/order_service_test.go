package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ordercore/order-service/internal/apperr"
	"github.com/ordercore/order-service/internal/discount"
	"github.com/ordercore/order-service/internal/mocks"
	"github.com/ordercore/order-service/internal/models"
	"github.com/ordercore/order-service/internal/observability"
	"github.com/ordercore/order-service/internal/repository"
)

// testOrderServiceSetup holds the mocked dependencies for one test.
type testOrderServiceSetup struct {
	service     OrderService
	orders      *mocks.MockOrderRepository
	products    *mocks.MockProductRepository
	customers   *mocks.MockCustomerRepository
	payments    *mocks.MockPaymentRepository
	idempotency *mocks.MockIdempotencyRepository
	audit       *mocks.MockAuditRepository
	outbox      *mocks.MockOutboxRepository
	mockPool    pgxmock.PgxPoolIface
	ctrl        *gomock.Controller
}

// fakePaymentService is a hand-rolled PaymentService stub: CancelOrder
// only ever calls VoidPaymentTx, and gomock has no convenient way to
// stub an interface built on top of other mocked interfaces here.
type fakePaymentService struct {
	voidErr   error
	voidCalls int
}

func (f *fakePaymentService) AuthorizePayment(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

func (f *fakePaymentService) VoidPaymentTx(ctx context.Context, tx pgx.Tx, paymentID uuid.UUID) error {
	f.voidCalls++
	return f.voidErr
}

func setupOrderService(t *testing.T) (*testOrderServiceSetup, *fakePaymentService) {
	ctrl := gomock.NewController(t)

	orders := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductRepository(ctrl)
	customers := mocks.NewMockCustomerRepository(ctrl)
	payments := mocks.NewMockPaymentRepository(ctrl)
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
		Products:    products,
		Customers:   customers,
		Payments:    payments,
		Idempotency: idempotency,
		Audit:       audit,
		Outbox:      outbox,
	}

	fakePay := &fakePaymentService{}
	calc := discount.New(discount.DefaultTiers())

	svc := NewOrderService(store, calc, fakePay, metrics, logger)

	return &testOrderServiceSetup{
		service:     svc,
		orders:      orders,
		products:    products,
		customers:   customers,
		payments:    payments,
		idempotency: idempotency,
		audit:       audit,
		outbox:      outbox,
		mockPool:    mockPool,
		ctrl:        ctrl,
	}, fakePay
}

func (s *testOrderServiceSetup) cleanup() {
	s.ctrl.Finish()
	s.mockPool.Close()
}

func sampleCreateRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		CustomerEmail: "jane.doe@example.com",
		Items: []models.LineItemRequest{
			{ProductSKU: "WIDGET-1", Quantity: 2},
		},
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	req := sampleCreateRequest()
	customerID := uuid.New()
	productID := uuid.New()

	setup.mockPool.ExpectBegin()

	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), "idem-key-1", models.OperationOrderCreate).
		Return(true, nil, nil)

	setup.customers.EXPECT().
		FindOrCreate(gomock.Any(), gomock.Any(), req.CustomerEmail, "Jane").
		Return(&models.Customer{ID: customerID, Email: req.CustomerEmail}, nil)

	setup.products.EXPECT().
		GetBySKU(gomock.Any(), gomock.Any(), "WIDGET-1").
		Return(&models.Product{ID: productID, SKU: "WIDGET-1", Name: "Widget", Price: decimal.NewFromInt(30), Active: true, StockQuantity: 10}, nil)

	setup.products.EXPECT().
		DecrementStock(gomock.Any(), gomock.Any(), productID, 2).
		Return(nil)

	setup.orders.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	setup.idempotency.EXPECT().
		Complete(gomock.Any(), gomock.Any(), "idem-key-1", gomock.Any(), "").
		Return(nil)

	setup.audit.EXPECT().
		Record(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	setup.outbox.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	setup.mockPool.ExpectCommit()

	result, err := setup.service.CreateOrder(ctx, req, "idem-key-1")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.AlreadyExisted)
	assert.Equal(t, customerID, result.Order.CustomerID)
	// subtotal 60, below the 50->0.05 tier threshold boundary is exceeded
	// (60 >= 50), so a 5% discount applies: 60 - 3.00 = 57.00.
	assert.True(t, result.Order.Total.Equal(decimal.NewFromFloat(57.00)), "got %s", result.Order.Total)

	assert.NoError(t, setup.mockPool.ExpectationsWereMet())
}

func TestOrderService_CreateOrder_MissingIdempotencyKey(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	result, err := setup.service.CreateOrder(context.Background(), sampleCreateRequest(), "")

	require.Error(t, err)
	assert.Nil(t, result)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestOrderService_CreateOrder_NoItems(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	req := &models.CreateOrderRequest{CustomerEmail: "jane.doe@example.com"}
	result, err := setup.service.CreateOrder(context.Background(), req, "idem-key-1")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestOrderService_CreateOrder_IdempotentReplay(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	existingOrderID := uuid.New()
	existingOrder := &models.Order{ID: existingOrderID, Status: models.OrderStatusPaid}

	setup.mockPool.ExpectBegin()

	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), "idem-key-cached", models.OperationOrderCreate).
		Return(false, &models.IdempotencyRecord{ResultEntityID: existingOrderID.String()}, nil)

	setup.orders.EXPECT().
		GetByID(gomock.Any(), existingOrderID).
		Return(existingOrder, nil)

	setup.mockPool.ExpectCommit()

	result, err := setup.service.CreateOrder(ctx, sampleCreateRequest(), "idem-key-cached")

	require.NoError(t, err)
	assert.True(t, result.AlreadyExisted)
	assert.Equal(t, existingOrderID, result.Order.ID)
}

func TestOrderService_CreateOrder_ProductNotFound(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	req := sampleCreateRequest()

	setup.mockPool.ExpectBegin()

	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), "idem-key-2", models.OperationOrderCreate).
		Return(true, nil, nil)

	setup.customers.EXPECT().
		FindOrCreate(gomock.Any(), gomock.Any(), req.CustomerEmail, "Jane").
		Return(&models.Customer{ID: uuid.New(), Email: req.CustomerEmail}, nil)

	setup.products.EXPECT().
		GetBySKU(gomock.Any(), gomock.Any(), "WIDGET-1").
		Return(nil, models.ErrProductNotFound)

	setup.mockPool.ExpectRollback()

	result, err := setup.service.CreateOrder(ctx, req, "idem-key-2")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	req := sampleCreateRequest()
	productID := uuid.New()

	setup.mockPool.ExpectBegin()

	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), "idem-key-3", models.OperationOrderCreate).
		Return(true, nil, nil)

	setup.customers.EXPECT().
		FindOrCreate(gomock.Any(), gomock.Any(), req.CustomerEmail, "Jane").
		Return(&models.Customer{ID: uuid.New(), Email: req.CustomerEmail}, nil)

	setup.products.EXPECT().
		GetBySKU(gomock.Any(), gomock.Any(), "WIDGET-1").
		Return(&models.Product{ID: productID, SKU: "WIDGET-1", Active: true, Price: decimal.NewFromInt(30)}, nil)

	setup.products.EXPECT().
		DecrementStock(gomock.Any(), gomock.Any(), productID, 2).
		Return(models.ErrInsufficientStock)

	setup.mockPool.ExpectRollback()

	result, err := setup.service.CreateOrder(ctx, req, "idem-key-3")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperr.KindBusinessValidation, apperr.KindOf(err))
}

func TestOrderService_CreateOrder_BelowMinimumTotal(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	req := &models.CreateOrderRequest{
		CustomerEmail: "jane.doe@example.com",
		Items:         []models.LineItemRequest{{ProductSKU: "FREEBIE", Quantity: 1}},
	}
	productID := uuid.New()

	setup.mockPool.ExpectBegin()

	setup.idempotency.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), "idem-key-4", models.OperationOrderCreate).
		Return(true, nil, nil)

	setup.customers.EXPECT().
		FindOrCreate(gomock.Any(), gomock.Any(), req.CustomerEmail, "Jane").
		Return(&models.Customer{ID: uuid.New(), Email: req.CustomerEmail}, nil)

	setup.products.EXPECT().
		GetBySKU(gomock.Any(), gomock.Any(), "FREEBIE").
		Return(&models.Product{ID: productID, SKU: "FREEBIE", Active: true, Price: decimal.Zero}, nil)

	setup.products.EXPECT().
		DecrementStock(gomock.Any(), gomock.Any(), productID, 1).
		Return(nil)

	setup.mockPool.ExpectRollback()

	result, err := setup.service.CreateOrder(ctx, req, "idem-key-4")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperr.KindBusinessValidation, apperr.KindOf(err))
}

func TestOrderService_GetOrder_Success(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	customerID := uuid.New()
	order := &models.Order{ID: orderID, CustomerID: customerID, Status: models.OrderStatusPending}

	setup.orders.EXPECT().GetByID(gomock.Any(), orderID).Return(order, nil)
	setup.payments.EXPECT().
		GetByOrderID(gomock.Any(), setup.mockPool, orderID).
		Return(nil, models.ErrPaymentNotFound)
	setup.customers.EXPECT().
		GetByID(gomock.Any(), setup.mockPool, customerID).
		Return(&models.Customer{ID: customerID, Email: "jane.doe@example.com"}, nil)

	got, err := setup.service.GetOrder(ctx, orderID)

	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", got.CustomerEmail)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	orderID := uuid.New()
	setup.orders.EXPECT().GetByID(gomock.Any(), orderID).Return(nil, models.ErrOrderNotFound)

	got, err := setup.service.GetOrder(context.Background(), orderID)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderService_ListCustomerOrders_UnknownEmail(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	setup.customers.EXPECT().
		Lookup(gomock.Any(), "ghost@example.com").
		Return(nil, models.ErrCustomerNotFound)

	page, err := setup.service.ListCustomerOrders(context.Background(), "ghost@example.com", 0, 10)

	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.TotalElements)
}

func TestOrderService_ListCustomerOrders_ClampsPageSize(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	customerID := uuid.New()
	setup.customers.EXPECT().
		Lookup(gomock.Any(), "jane.doe@example.com").
		Return(&models.Customer{ID: customerID, Email: "jane.doe@example.com"}, nil)

	setup.orders.EXPECT().
		GetByCustomerID(gomock.Any(), customerID, maxPageSize, 0).
		Return([]*models.Order{}, 0, nil)

	page, err := setup.service.ListCustomerOrders(context.Background(), "jane.doe@example.com", 0, 10000)

	require.NoError(t, err)
	assert.Equal(t, maxPageSize, page.Size)
}

func TestOrderService_CancelOrder_Success(t *testing.T) {
	setup, fakePay := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	productID := uuid.New()

	existingOrder := &models.Order{
		ID:      orderID,
		Status:  models.OrderStatusPending,
		Version: 1,
		Items:   []models.OrderItem{{ProductID: productID, ProductSKU: "WIDGET-1", Quantity: 2}},
	}

	setup.mockPool.ExpectBegin()

	setup.orders.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any(), orderID).
		Return(existingOrder, nil)

	setup.products.EXPECT().
		IncrementStock(gomock.Any(), gomock.Any(), productID, 2).
		Return(nil)

	setup.payments.EXPECT().
		GetByOrderID(gomock.Any(), gomock.Any(), orderID).
		Return(nil, models.ErrPaymentNotFound)

	setup.orders.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), orderID, models.OrderStatusCancelled, int64(1)).
		Return(nil)

	setup.audit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	setup.outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	setup.mockPool.ExpectCommit()

	err := setup.service.CancelOrder(ctx, orderID)

	require.NoError(t, err)
	assert.Equal(t, 0, fakePay.voidCalls)
	assert.NoError(t, setup.mockPool.ExpectationsWereMet())
}

func TestOrderService_CancelOrder_VoidsAuthorizedPayment(t *testing.T) {
	setup, fakePay := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	paymentID := uuid.New()

	existingOrder := &models.Order{ID: orderID, Status: models.OrderStatusPaid, Version: 2}

	setup.mockPool.ExpectBegin()

	setup.orders.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any(), orderID).
		Return(existingOrder, nil)

	setup.payments.EXPECT().
		GetByOrderID(gomock.Any(), gomock.Any(), orderID).
		Return(&models.Payment{ID: paymentID, OrderID: orderID, Status: models.PaymentStatusAuthorized}, nil)

	setup.orders.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), orderID, models.OrderStatusCancelled, int64(2)).
		Return(nil)

	setup.audit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	setup.outbox.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	setup.mockPool.ExpectCommit()

	err := setup.service.CancelOrder(ctx, orderID)

	require.NoError(t, err)
	assert.Equal(t, 1, fakePay.voidCalls)
}

func TestOrderService_CancelOrder_InvalidStatus(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	existingOrder := &models.Order{ID: orderID, Status: models.OrderStatusCancelled, Version: 1}

	setup.mockPool.ExpectBegin()
	setup.orders.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any(), orderID).
		Return(existingOrder, nil)
	setup.mockPool.ExpectRollback()

	err := setup.service.CancelOrder(ctx, orderID)

	require.Error(t, err)
	assert.Equal(t, apperr.KindBusinessValidation, apperr.KindOf(err))
}

func TestOrderService_CancelOrder_OptimisticLockConflict(t *testing.T) {
	setup, _ := setupOrderService(t)
	defer setup.cleanup()

	ctx := context.Background()
	orderID := uuid.New()
	existingOrder := &models.Order{ID: orderID, Status: models.OrderStatusPending, Version: 1}

	setup.mockPool.ExpectBegin()
	setup.orders.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any(), orderID).
		Return(existingOrder, nil)
	setup.payments.EXPECT().
		GetByOrderID(gomock.Any(), gomock.Any(), orderID).
		Return(nil, models.ErrPaymentNotFound)
	setup.orders.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any(), orderID, models.OrderStatusCancelled, int64(1)).
		Return(models.ErrOptimisticLock)
	setup.mockPool.ExpectRollback()

	err := setup.service.CancelOrder(ctx, orderID)

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
