// Package model defines the data structures used by the sales backend,
// including users, clients, projects, orders and performance records.
package model

import (
	"time"
)

// User represents a sales rep or admin account
type User struct {
	Key          string    `json:"_key,omitempty"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         string    `json:"role"`                 // admin, manager, member
	Department   string    `json:"department,omitempty"` // e.g. "first_sales"
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new user with default values
func NewUser(email, name, role string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Name:      name,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin returns true if user is admin
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// CanWrite returns true if user can modify records
func (u *User) CanWrite() bool {
	return u.Role == "admin" || u.Role == "manager" || u.Role == "member"
}
