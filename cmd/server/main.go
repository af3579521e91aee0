package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ordercore/order-service/internal/config"
	"github.com/ordercore/order-service/internal/discount"
	httpHandler "github.com/ordercore/order-service/internal/handler/http"
	"github.com/ordercore/order-service/internal/gateway"
	"github.com/ordercore/order-service/internal/messaging"
	"github.com/ordercore/order-service/internal/observability"
	"github.com/ordercore/order-service/internal/repository"
	"github.com/ordercore/order-service/internal/retry"
	"github.com/ordercore/order-service/internal/service"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. Initialize logger
	logger := observability.NewLogger(observability.LoggerConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Msg("order-service starting")

	// 3. Initialize metrics
	metrics := observability.NewMetrics()

	// 4. Connect to PostgreSQL
	dbPool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping database")
	}
	logger.Info().Msg("database connection established")

	// 5. Run migrations
	runMigrations(cfg.Database.URL, logger)

	// 6. Initialize Kafka producer
	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll
	kafkaConfig.Producer.Return.Successes = true
	kafkaConfig.Producer.Retry.Max = 3
	kafkaConfig.Producer.Compression = sarama.CompressionSnappy

	kafkaProducer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, kafkaConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Kafka producer")
	}
	defer kafkaProducer.Close()
	logger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("kafka producer initialized")

	// 7. Initialize the store
	store := repository.New(dbPool, logger)

	// 8. Initialize domain collaborators
	calc := discount.New(tiersFromConfig(cfg.Business))
	gatewayClient := gateway.New(
		cfg.Business.PaymentsAuthURL,
		time.Duration(cfg.Business.PaymentsTimeoutSeconds)*time.Second,
		logger,
	)
	retryPolicy := retry.Policy{MaxAttempts: cfg.Retry.MaxAttempts, Backoff: cfg.Retry.Backoff()}

	// 9. Initialize service layer
	paymentService := service.NewPaymentService(store, gatewayClient, retryPolicy, metrics, logger)
	orderService := service.NewOrderService(store, calc, paymentService, metrics, logger)

	loyaltyCfg := service.DefaultLoyaltyConfig()
	loyaltyCfg.PointsPerDollar = decimal.NewFromFloat(cfg.Business.LoyaltyPointsPerDollar)
	loyaltyCfg.MaxPoints = cfg.Business.LoyaltyMaxPoints
	loyaltyWorker := service.NewLoyaltyWorker(store, loyaltyCfg, metrics, logger)

	// 10. Initialize HTTP handler and router
	orderHandler := httpHandler.NewOrderHandler(orderService, paymentService, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(httpHandler.Logging(logger))
	router.Use(httpHandler.Tracing())
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "Idempotency-Key"},
	}))

	orderHandler.Routes(router)
	router.Get("/healthz", httpHandler.HealthHandler())
	router.Get("/readyz", httpHandler.ReadyHandler(dbPool, kafkaProducer, logger))
	router.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 11. Start background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher := messaging.NewOutboxPublisher(store.Outbox, kafkaProducer, cfg.Kafka.Topic, metrics, logger)
	go publisher.Start(ctx)
	logger.Info().Msg("outbox publisher started")

	go loyaltyWorker.Run(ctx)
	logger.Info().Dur("tick_interval", loyaltyCfg.TickInterval).Msg("loyalty worker started")

	// 12. Start HTTP server
	go func() {
		logger.Info().Int("port", cfg.HTTP.Port).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// 13. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// 14. Graceful shutdown
	cancel() // stop outbox publisher and loyalty worker

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	logger.Info().Msg("HTTP server stopped")

	logger.Info().Msg("shutdown complete")
}

// runMigrations applies pending schema migrations from ./migrations
// before the service starts serving traffic.
func runMigrations(databaseURL string, logger zerolog.Logger) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize migrator")
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal().Err(err).Msg("failed to apply migrations")
	}
	logger.Info().Msg("migrations applied")
}

func tiersFromConfig(b config.BusinessConfig) []discount.Tier {
	parse := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	return []discount.Tier{
		{Threshold: parse(b.PromotionTier1.Threshold), Rate: parse(b.PromotionTier1.Discount)},
		{Threshold: parse(b.PromotionTier2.Threshold), Rate: parse(b.PromotionTier2.Discount)},
		{Threshold: parse(b.PromotionTier3.Threshold), Rate: parse(b.PromotionTier3.Discount)},
	}
}
