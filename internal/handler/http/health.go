package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/IBM/sarama"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// HealthHandler backs GET /healthz: a liveness probe that only confirms
// the process is up and serving, never its dependencies.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	}
}

// ReadyHandler backs GET /readyz: a readiness probe that checks the two
// dependencies an order can't be placed or paid without — the order
// database and the Kafka producer behind the integration event outbox.
func ReadyHandler(db *pgxpool.Pool, eventProducer sarama.SyncProducer, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		// Order and payment writes fail outright without the database.
		if err := db.Ping(ctx); err != nil {
			logger.Error().Err(err).Msg("order database ping failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unavailable",
				"checks": map[string]string{
					"database": "failed",
					"error":    err.Error(),
				},
			})
			return
		}

		// No producer means the outbox publisher has nothing to send
		// integration events through.
		if eventProducer == nil {
			logger.Error().Msg("kafka event producer is nil")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unavailable",
				"checks": map[string]string{
					"database": "ok",
					"kafka":    "failed",
				},
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ready",
			"checks": map[string]string{
				"database": "ok",
				"kafka":    "ok",
			},
		})
	}
}
