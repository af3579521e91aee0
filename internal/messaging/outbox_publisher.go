package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/ordercore/order-service/internal/models"
	"github.com/ordercore/order-service/internal/observability"
	"github.com/ordercore/order-service/internal/repository"
)

// OutboxPublisher polls the outbox table and publishes integration
// events to Kafka, the transactional-outbox relay that lets the core
// commit domain state and its integration events atomically. It never
// inspects the business meaning of an event: it only serializes what
// was already committed.
type OutboxPublisher struct {
	outbox       repository.OutboxRepository
	producer     sarama.SyncProducer
	metrics      *observability.Metrics
	logger       zerolog.Logger
	pollInterval time.Duration
	batchSize    int
	topic        string
}

// NewOutboxPublisher creates a new outbox publisher publishing to a
// single topic, with event_type and aggregate_type carried as Kafka
// message headers for consumer-side routing.
func NewOutboxPublisher(outbox repository.OutboxRepository, producer sarama.SyncProducer, topic string, metrics *observability.Metrics, logger zerolog.Logger) *OutboxPublisher {
	return &OutboxPublisher{
		outbox:       outbox,
		producer:     producer,
		metrics:      metrics,
		logger:       logger.With().Str("component", "outbox_publisher").Logger(),
		pollInterval: 100 * time.Millisecond,
		batchSize:    100,
		topic:        topic,
	}
}

// Start begins polling for outbox events until ctx is cancelled.
func (p *OutboxPublisher) Start(ctx context.Context) {
	p.logger.Info().Msg("outbox publisher started")
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.publishPending(ctx)
		case <-ctx.Done():
			p.logger.Info().Msg("outbox publisher stopping")
			return
		}
	}
}

func (p *OutboxPublisher) publishPending(ctx context.Context) {
	events, err := p.outbox.GetUnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to get unprocessed events")
		return
	}
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		if err := p.publishEvent(event); err != nil {
			p.logger.Error().
				Err(err).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to publish event")
			p.metrics.OutboxEventsFailed.WithLabelValues(event.EventType).Inc()

			if err := p.outbox.IncrementRetryCount(ctx, event.ID, err.Error()); err != nil {
				p.logger.Error().Err(err).Msg("failed to increment retry count")
			}
			continue
		}

		p.metrics.OutboxEventsPublished.WithLabelValues(event.EventType).Inc()
		if err := p.outbox.MarkProcessed(ctx, event.ID); err != nil {
			p.logger.Error().Err(err).Msg("failed to mark event as processed")
		}
	}
}

func (p *OutboxPublisher) publishEvent(event *models.OutboxEvent) error {
	payload, err := json.Marshal(event.EventPayload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AggregateID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("aggregate_type"), Value: []byte(event.AggregateType)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send to kafka: %w", err)
	}

	p.logger.Debug().
		Str("event_type", event.EventType).
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("published event to kafka")
	return nil
}
