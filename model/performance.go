package model

import "time"

// Performance is one monthly gross-profit row per
// (assignee, recording month, client, project name) combination.
// The whole collection is replaced on every CSV import.
type Performance struct {
	Key            string    `json:"_key,omitempty"`
	AssigneeID     string    `json:"assignee_id"`
	AssigneeName   string    `json:"assignee_name"`
	RecordingMonth string    `json:"recording_month"` // "YYYY-MM"
	ClientName     string    `json:"client_name"`
	ProjectName    string    `json:"project_name"`
	Revenue        float64   `json:"revenue,omitempty"`
	Cost           float64   `json:"cost,omitempty"`
	GrossProfit    float64   `json:"gross_profit"`
	ImportedAt     time.Time `json:"imported_at"`
}
