// Package performances defines types for Kafka event processing of performance imports.
package performances

import "time"

// ImportRequestedEvent carries a CSV payload to be imported asynchronously.
// The CSV text travels inline; monthly exports are small enough that a blob
// store indirection is not worth the moving parts.
type ImportRequestedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	// RequestedBy is the user key of the uploader, for audit logging
	RequestedBy string `json:"requested_by,omitempty"`

	CSV string `json:"csv"`
}
