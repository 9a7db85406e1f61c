package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"mesaYaCore/internal/modules/realtime/domain"
)

// KafkaPublisher mirrors domain events onto a Kafka topic so the realtime
// gateway and other downstream services can consume them.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns nil when no brokers are configured; callers treat a
// nil publisher as "Kafka disabled" and rely on the websocket hub alone.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if len(brokers) == 0 {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: 5 * time.Second,
			// Async keeps event publication off the request path.
			Async: true,
		},
	}
}

// Publish keys messages by room so per-room ordering survives partitioning.
func (p *KafkaPublisher) Publish(ctx context.Context, evt *domain.Event) error {
	if p == nil {
		return nil
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.Room),
		Value: value,
	})
}

// Close flushes pending messages during shutdown.
func (p *KafkaPublisher) Close() {
	if p == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		slog.Warn("kafka writer close error", slog.Any("error", err))
	}
}
