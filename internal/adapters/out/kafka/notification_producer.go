// Package kafka publishes order notification events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/notification"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NotificationProducer is a notification.Observer that forwards every event
// as JSON keyed by order id, so events of one order land on one partition.
type NotificationProducer struct {
	writer messageWriter
}

var _ notification.Observer = (*NotificationProducer)(nil)

// NewWriter builds a writer for the topic on the given broker address.
func NewWriter(host, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(host),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func NewNotificationProducer(writer messageWriter) *NotificationProducer {
	return &NotificationProducer{writer: writer}
}

func (p *NotificationProducer) Name() string {
	return "kafka"
}

func (p *NotificationProducer) Notify(ctx context.Context, event notification.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s for %s: %w", event.Type, event.OrderID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *NotificationProducer) Close() error {
	return p.writer.Close()
}
