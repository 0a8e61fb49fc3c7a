package model

import "time"

// Dismissal records that a user dismissed a data-quality alert. The alert
// identity is type plus client name so re-raised alerts for the same record
// stay hidden.
type Dismissal struct {
	Key         string    `json:"_key,omitempty"`
	UserID      string    `json:"user_id"`
	AlertType   string    `json:"alert_type"` // missing_order_date, unmatched_performance
	ClientName  string    `json:"client_name"`
	DismissedAt time.Time `json:"dismissed_at"`
}

// AlertID returns the stable identifier for the dismissed alert
func (d *Dismissal) AlertID() string {
	return d.AlertType + ":" + d.ClientName
}
