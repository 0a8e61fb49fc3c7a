// Package auth provides authentication and authorization types for the REST API.
package auth

// LoginRequest defines the body for email/password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse defines the session info returned to the frontend
type UserResponse struct {
	Key        string `json:"_key"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}
