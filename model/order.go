package model

import "time"

// ClientTypeUnknown is the order client type when the client name matches
// no client record.
const ClientTypeUnknown = "-"

// Order is created automatically when a project transitions to won, or
// backfilled by the reconciliation pass. Client, assignee and menu names are
// snapshots taken at creation time and may go stale.
// Revenue, cost and gross profit are filled in later by the performance
// import reconciliation.
type Order struct {
	Key                 string     `json:"_key,omitempty"`
	ProjectID           string     `json:"project_id"`
	ClientID            string     `json:"client_id,omitempty"`
	ClientName          string     `json:"client_name"`
	ClientType          string     `json:"client_type"` // new, existing, or "-"
	Title               string     `json:"title"`
	AssigneeID          string     `json:"assignee_id,omitempty"`
	ProposalMenuNames   string     `json:"proposal_menu_names,omitempty"`
	OrderDate           time.Time  `json:"order_date"`
	Revenue             *float64   `json:"revenue,omitempty"`
	Cost                *float64   `json:"cost,omitempty"`
	GrossProfit         *float64   `json:"gross_profit,omitempty"`
	ImplementationMonth string     `json:"implementation_month,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}
