// Package performances handles Kafka event production for performance imports.
package performances

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// ImportProducer handles sending performance import events to Kafka
type ImportProducer struct {
	Writer *kafka.Writer
}

// NewImportProducer initializes a new Kafka writer for import events
func NewImportProducer(brokers []string, topic string) *ImportProducer {
	return &ImportProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishImportRequested sends the CSV payload to the import topic
func (p *ImportProducer) PublishImportRequested(ctx context.Context, csvText, requestedBy string) (string, error) {
	event := ImportRequestedEvent{
		EventType:     "sales.performance.import",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		RequestedBy:   requestedBy,
		CSV:           csvText,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return "", err
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(requestedBy),
		Value: payload,
	})
	if err != nil {
		return "", err
	}
	return event.EventID, nil
}

// Close cleans up the Kafka writer
func (p *ImportProducer) Close() error {
	return p.Writer.Close()
}
