package request

import "github.com/google/uuid"

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// CreateUserRequest represents an operator account creation request
type CreateUserRequest struct {
	Name     string     `json:"name" binding:"required,min=2,max=255"`
	Username string     `json:"username" binding:"required,min=3,max=100"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     string     `json:"role" binding:"required,oneof=admin store"`
	StoreID  *uuid.UUID `json:"store_id"`
}

// SetUserActiveRequest enables or disables an operator account
type SetUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
