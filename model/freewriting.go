package model

import "time"

// FreeWritingType distinguishes monthly and weekly notes
type FreeWritingType string

const (
	// FreeWritingMonthly keys a note to a "YYYY-MM" period.
	FreeWritingMonthly FreeWritingType = "monthly"
	// FreeWritingWeekly keys a note to a "YYYY-Www" period.
	FreeWritingWeekly FreeWritingType = "weekly"
)

// FreeWriting is a single free-text note upserted per
// (user-or-"overall", type, period) key.
type FreeWriting struct {
	Key       string          `json:"_key,omitempty"`
	UserID    string          `json:"user_id"` // user key or "overall"
	Type      FreeWritingType `json:"type"`
	Period    string          `json:"period"` // "YYYY-MM" or "YYYY-Www"
	Content   string          `json:"content"`
	UpdatedAt time.Time       `json:"updated_at"`
}
