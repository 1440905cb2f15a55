package dto

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phoneNumber"`
	UnitID      *int64  `json:"unitId"`
	AdminCode   string  `json:"adminCode"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public account shape.
type UserResponse struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	UnitID *int64      `json:"unitId"`
}

// AuthResponse bundles a token with the account.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps the domain model.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		UnitID: user.UnitID,
	}
}
