package handler

import (
	"time"
)

// CurrentUserResponse represents the caller as seen by the API
type CurrentUserResponse struct {
	UserID      string     `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username    string     `json:"username" example:"desk"`
	DisplayName string     `json:"display_name" example:"Front Desk"`
	Role        string     `json:"role" example:"Staff"`
	IsAdmin     bool       `json:"is_admin" example:"false"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// LogoutResponse represents the response for logout
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}
