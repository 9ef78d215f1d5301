package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/mihrabhq/backend/internal/domain/identity"
)

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token to exchange for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is returned on login and refresh.
type TokenResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// CreateUserRequest creates a new account.
type CreateUserRequest struct {
	Username string     `json:"username" binding:"required,min=3,max=150"`
	Name     string     `json:"name" binding:"required,max=255"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     string     `json:"role" binding:"required"`
	PlaceID  *uuid.UUID `json:"place_id"`
}

// UpdateUserRequest updates an existing account.
type UpdateUserRequest struct {
	Name     *string    `json:"name" binding:"omitempty,max=255"`
	Password *string    `json:"password" binding:"omitempty,min=8"`
	Role     *string    `json:"role"`
	PlaceID  *uuid.UUID `json:"place_id"`
	IsActive *bool      `json:"is_active"`
}

// ListUsersRequest filters the user listing.
type ListUsersRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UserResponse is the serialized form of a user account.
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	PlaceID   *uuid.UUID `json:"place_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      user.Role.String(),
		PlaceID:   user.PlaceID,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
