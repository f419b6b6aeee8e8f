// Package kafka provides the Sarama-backed implementation of the outbound
// event publisher. Domain events drained from aggregates after a commit are
// serialized to JSON and sent to a single topic, keyed by event name so all
// messages of one kind land on the same partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"

	"github.com/IBM/sarama"
)

// envelope is the wire format of an outbound event.
type envelope struct {
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// SaramaEventPublisher publishes domain events through a synchronous Sarama
// producer. It implements ports.EventPublisher.
type SaramaEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewSaramaEventPublisher connects a synchronous producer to the given
// brokers. Pass the returned publisher to the command handlers and close it
// on shutdown.
func NewSaramaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*SaramaEventPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer: %w", err)
	}

	return NewSaramaEventPublisherWithProducer(producer, topic, logger), nil
}

// NewSaramaEventPublisherWithProducer wraps an existing producer. Used by
// tests with a mock producer.
func NewSaramaEventPublisherWithProducer(
	producer sarama.SyncProducer, topic string, logger *slog.Logger,
) *SaramaEventPublisher {
	return &SaramaEventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish sends each event as its own message. The first send failure aborts
// the batch and is returned to the caller, who logs it; committed state is
// never rolled back over a publish failure.
func (p *SaramaEventPublisher) Publish(ctx context.Context, events ...ports.DomainEvent) error {
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", event.Name(), err)
		}

		value, err := json.Marshal(envelope{
			Name:       event.Name(),
			OccurredAt: event.OccurredAt(),
			Payload:    payload,
		})
		if err != nil {
			return fmt.Errorf("marshal envelope %s: %w", event.Name(), err)
		}

		partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.Name()),
			Value: sarama.ByteEncoder(value),
		})
		if err != nil {
			return fmt.Errorf("send event %s: %w", event.Name(), err)
		}

		p.logger.DebugContext(ctx, "published domain event",
			slog.String("event", event.Name()),
			slog.String("topic", p.topic),
			slog.Int64("partition", int64(partition)),
			slog.Int64("offset", offset),
		)
	}

	return nil
}

// Close releases the underlying producer.
func (p *SaramaEventPublisher) Close() error {
	return p.producer.Close()
}
