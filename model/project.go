package model

import "time"

// ProjectStatus represents the pipeline stage of a sales project
type ProjectStatus string

const (
	// ProjectStatusProposal marks a project at the initial proposal stage.
	ProjectStatusProposal ProjectStatus = "proposal"
	// ProjectStatusNegotiation marks a project under active negotiation.
	ProjectStatusNegotiation ProjectStatus = "negotiation"
	// ProjectStatusWon marks a closed-won project. Winning triggers order creation.
	ProjectStatusWon ProjectStatus = "won"
	// ProjectStatusLost marks a closed-lost project.
	ProjectStatusLost ProjectStatus = "lost"
	// ProjectStatusActive marks a won project currently in delivery.
	ProjectStatusActive ProjectStatus = "active"
	// ProjectStatusCompleted marks a delivered project.
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project represents a sales opportunity against a client.
// ClientName is denormalized from the client record at creation time and is
// the value KPI classification keys on.
type Project struct {
	Key              string        `json:"_key,omitempty"`
	Title            string        `json:"title"`
	ClientID         string        `json:"client_id,omitempty"`
	ClientName       string        `json:"client_name"`
	ProductName      string        `json:"product_name,omitempty"`
	ProposalMenuIDs  []string      `json:"proposal_menu_ids,omitempty"`
	AssigneeID       string        `json:"assignee_id,omitempty"`
	Status           ProjectStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	LastContactDate  *time.Time    `json:"last_contact_date,omitempty"`
	OrderDate        *time.Time    `json:"order_date,omitempty"`
	FirstMeetingDate *time.Time    `json:"first_meeting_date,omitempty"`
}

// NewProject creates a new project with default values
func NewProject(title, clientID, clientName string) *Project {
	now := time.Now()
	return &Project{
		Title:      title,
		ClientID:   clientID,
		ClientName: clientName,
		Status:     ProjectStatusProposal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsWon reports whether the project has closed won
func (p *Project) IsWon() bool {
	return p.Status == ProjectStatusWon
}

// HasOrderDate reports whether an order date has been recorded.
// Won projects without one are excluded from revenue KPIs.
func (p *Project) HasOrderDate() bool {
	return p.OrderDate != nil
}
