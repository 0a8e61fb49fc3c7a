package model

import "time"

// ActionLog is a free-text record of a sales contact event linked to a
// project. Status and summary are captured at recording time and are not
// kept in sync with the parent project afterwards.
type ActionLog struct {
	Key             string        `json:"_key,omitempty"`
	ProjectID       string        `json:"project_id"`
	ProjectTitle    string        `json:"project_title,omitempty"`
	ClientName      string        `json:"client_name,omitempty"`
	AssigneeID      string        `json:"assignee_id,omitempty"`
	ContactDate     time.Time     `json:"contact_date"`
	Summary         string        `json:"summary,omitempty"`
	Detail          string        `json:"detail,omitempty"`
	Status          ProjectStatus `json:"status,omitempty"`
	PerformanceType string        `json:"performance_type,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// NewActionLog creates a new action log with default values
func NewActionLog(projectID string) *ActionLog {
	now := time.Now()
	return &ActionLog{
		ProjectID:   projectID,
		ContactDate: now,
		CreatedAt:   now,
	}
}
