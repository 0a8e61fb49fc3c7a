// Package orders handles Kafka event production for order creation events.
package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/salescope/sales-backend/model"
)

// OrderProducer handles sending order creation events to Kafka
type OrderProducer struct {
	Writer *kafka.Writer
}

// NewOrderProducer initializes a new Kafka writer for order events
func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// newOrderCreatedEvent builds the event contract for one order
func newOrderCreatedEvent(order model.Order, source string) OrderCreatedEvent {
	return OrderCreatedEvent{
		EventType:     "sales.order.created",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		Order:         order,
		Source:        source,
	}
}

// PublishOrderCreated sends the event to the Kafka topic
func (p *OrderProducer) PublishOrderCreated(ctx context.Context, order model.Order, source string) error {
	event := newOrderCreatedEvent(order, source)

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ProjectID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *OrderProducer) Close() error {
	return p.Writer.Close()
}
