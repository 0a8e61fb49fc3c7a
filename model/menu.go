package model

import "time"

// ProposalMenu is a sellable menu item referenced by projects. Orders
// snapshot the resolved menu names as a comma-joined string.
type ProposalMenu struct {
	Key       string    `json:"_key,omitempty"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
