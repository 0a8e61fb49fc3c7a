package model

import "time"

// ClientStatus represents the lifecycle state of a client relationship
type ClientStatus string

const (
	// ClientStatusNew marks a client that has never placed an order.
	ClientStatusNew ClientStatus = "new"
	// ClientStatusExisting marks a client with at least one past order.
	ClientStatusExisting ClientStatus = "existing"
	// ClientStatusDormant marks an existing client with no recent orders.
	ClientStatusDormant ClientStatus = "dormant"
)

// Client represents a customer company. Name is unique by convention only;
// projects reference clients by denormalized name as well as by key.
type Client struct {
	Key           string       `json:"_key,omitempty"`
	Name          string       `json:"name"`
	Status        ClientStatus `json:"status"`
	LastOrderDate *time.Time   `json:"last_order_date,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewClient creates a new client with default values
func NewClient(name string) *Client {
	now := time.Now()
	return &Client{
		Name:      name,
		Status:    ClientStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExisting reports whether the client counts toward "existing" deal splits.
// Dormant clients have ordered before, so they classify as existing.
func (c *Client) IsExisting() bool {
	return c.Status == ClientStatusExisting || c.Status == ClientStatusDormant
}
