// Package orders defines types for Kafka event production of order creation events.
package orders

import (
	"time"

	"github.com/salescope/sales-backend/model"
)

// OrderCreatedEvent represents an order creation event published to Kafka.
// Downstream consumers (billing, notifications) key on the project ID.
type OrderCreatedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	Order model.Order `json:"order"`

	// Source distinguishes win-transition creation from the backfill pass
	Source string `json:"source"`
}

const (
	// SourceTransition marks orders created by a project moving to won.
	SourceTransition = "transition"
	// SourceBackfill marks orders created by the startup reconciliation pass.
	SourceBackfill = "backfill"
)
