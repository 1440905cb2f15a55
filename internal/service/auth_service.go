package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// AuthService handles account registration and login.
type AuthService struct {
	cfg    config.AuthConfig
	users  repository.UserRepository
	units  repository.UnitRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, units repository.UnitRepository) *AuthService {
	return &AuthService{
		cfg:    cfg,
		users:  users,
		units:  units,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// RegisterInput describes an account signup. AdminCode is required for the
// admin role; UnitID is required for employees.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	PhoneNumber *string
	UnitID      *int64
	AdminCode   string
}

// AuthResult bundles the issued token with the account.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Register provisions an account. Employees must name a valid unit; the
// admin role is gated by a shared admin code.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"password", input.Password},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, apperrors.NewValidationError(field.name+" is required", map[string]any{"field": field.name})
		}
	}

	role := domain.RoleEmployee
	switch input.Role {
	case "", string(domain.RoleEmployee):
	case string(domain.RoleAdmin):
		if !s.validAdminCode(input.AdminCode) {
			return nil, apperrors.NewForbidden("invalid admin code")
		}
		role = domain.RoleAdmin
	default:
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"field": "role"})
	}

	var unitID *int64
	if role == domain.RoleEmployee {
		if input.UnitID == nil {
			return nil, apperrors.NewValidationError("unitId is required for employees", map[string]any{"field": "unitId"})
		}
		if _, err := s.units.GetByID(ctx, *input.UnitID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("unit", map[string]any{"unit_id": *input.UnitID})
			}
			return nil, apperrors.MapError(err)
		}
		unitID = input.UnitID
	} else {
		unitID = input.UnitID
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		PhoneNumber:  input.PhoneNumber,
		UnitID:       unitID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.issue(user)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthenticated("invalid credentials")
	}
	return s.issue(user)
}

// Profile returns the account behind an authenticated principal.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthenticated("user not found")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) validAdminCode(code string) bool {
	if code == "" {
		return false
	}
	for _, candidate := range s.cfg.AdminCodes {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(code)) == 1 {
			return true
		}
	}
	return false
}
