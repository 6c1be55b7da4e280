package api

import "time"

// swagger:model api.UserResponse
type UserResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
}

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message   string       `json:"message" example:"Login successful"`
	Token     string       `json:"token" example:"eyJhbGciOi..."`
	ExpiresAt time.Time    `json:"expires_at" example:"2025-05-09T15:04:05Z"`
	User      UserResponse `json:"user"`
}
