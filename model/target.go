package model

import "time"

// OverallScope is the UserID used for company-wide targets and notes.
const OverallScope = "overall"

// SalesTarget holds the numeric targets for one user (or "overall") in one
// calendar month. Targets are reference lines only; nothing enforces them.
type SalesTarget struct {
	Key               string    `json:"_key,omitempty"`
	UserID            string    `json:"user_id"` // user key or "overall"
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	DealTarget        int       `json:"deal_target"`
	OrderTarget       int       `json:"order_target"`
	GrossProfitBudget float64   `json:"gross_profit_budget"`
	UpdatedAt         time.Time `json:"updated_at"`
}
