package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service, loaded by viper from
// environment variables (prefixed ORDER_SERVICE_) with defaults set
// here. Keys use viper's nested dot notation so business.* names match
// the discount, loyalty, payment and inventory tunables exposed to
// operators.
type Config struct {
	Service  ServiceConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
	Business BusinessConfig
	Retry    RetryConfig
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string
	Environment string
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	URL      string
}

// KafkaConfig holds Kafka broker configuration for the integration
// event publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// PromotionTier is one discount tier under business.promotions.*.
type PromotionTier struct {
	Threshold string
	Discount  string
}

// BusinessConfig holds the domain tunables an operator can adjust
// without a redeploy: discount tiers, loyalty accrual, the payment
// gateway endpoint, and the default restock quantity.
type BusinessConfig struct {
	PromotionTier1 PromotionTier
	PromotionTier2 PromotionTier
	PromotionTier3 PromotionTier

	LoyaltyPointsPerDollar float64
	LoyaltyMaxPoints       int

	PaymentsAuthURL          string
	PaymentsTimeoutSeconds   int

	InventoryDefaultRestockQuantity int
}

// RetryConfig holds the bounded-retry policy constants for gateway
// calls.
type RetryConfig struct {
	MaxAttempts int
	BackoffMS   int
}

// Backoff returns the configured backoff as a time.Duration.
func (r RetryConfig) Backoff() time.Duration {
	return time.Duration(r.BackoffMS) * time.Millisecond
}

// LoadConfig loads configuration from the environment via viper,
// falling back to the defaults set below.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ORDER_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service.name", "order-service")
	v.SetDefault("service.environment", "development")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "orders")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "order-service.integration-events")

	v.SetDefault("http.port", 8080)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("business.promotions.tier1.threshold", "50.00")
	v.SetDefault("business.promotions.tier1.discount", "0.05")
	v.SetDefault("business.promotions.tier2.threshold", "100.00")
	v.SetDefault("business.promotions.tier2.discount", "0.10")
	v.SetDefault("business.promotions.tier3.threshold", "200.00")
	v.SetDefault("business.promotions.tier3.discount", "0.15")

	v.SetDefault("business.loyalty.points-per-dollar", 1.0)
	v.SetDefault("business.loyalty.max-points", 500)

	v.SetDefault("business.payments.auth-url", "http://localhost:9099/authorize")
	v.SetDefault("business.payments.timeout-seconds", 10)

	v.SetDefault("business.inventory.default-restock-quantity", 100)

	v.SetDefault("retry.max-attempts", 2)
	v.SetDefault("retry.backoff-ms", 1000)

	cfg := &Config{
		Service: ServiceConfig{
			Name:        v.GetString("service.name"),
			Environment: v.GetString("service.environment"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Database: v.GetString("database.database"),
		},
		Kafka: KafkaConfig{
			Brokers: v.GetStringSlice("kafka.brokers"),
			Topic:   v.GetString("kafka.topic"),
		},
		HTTP: HTTPConfig{
			Port: v.GetInt("http.port"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Business: BusinessConfig{
			PromotionTier1: PromotionTier{
				Threshold: v.GetString("business.promotions.tier1.threshold"),
				Discount:  v.GetString("business.promotions.tier1.discount"),
			},
			PromotionTier2: PromotionTier{
				Threshold: v.GetString("business.promotions.tier2.threshold"),
				Discount:  v.GetString("business.promotions.tier2.discount"),
			},
			PromotionTier3: PromotionTier{
				Threshold: v.GetString("business.promotions.tier3.threshold"),
				Discount:  v.GetString("business.promotions.tier3.discount"),
			},
			LoyaltyPointsPerDollar:           v.GetFloat64("business.loyalty.points-per-dollar"),
			LoyaltyMaxPoints:                 v.GetInt("business.loyalty.max-points"),
			PaymentsAuthURL:                  v.GetString("business.payments.auth-url"),
			PaymentsTimeoutSeconds:           v.GetInt("business.payments.timeout-seconds"),
			InventoryDefaultRestockQuantity:  v.GetInt("business.inventory.default-restock-quantity"),
		},
		Retry: RetryConfig{
			MaxAttempts: v.GetInt("retry.max-attempts"),
			BackoffMS:   v.GetInt("retry.backoff-ms"),
		},
	}

	cfg.Database.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
	)

	return cfg, nil
}
