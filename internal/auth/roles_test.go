package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

func newGuardedApp(principal *domain.Principal) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	app.Post("/guarded", func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, *principal)
		}
		return c.Next()
	}, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		principal  *domain.Principal
		wantStatus int
	}{
		{
			name:       "admin passes",
			principal:  &domain.Principal{ID: 1, Role: domain.RoleAdmin},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "employee forbidden",
			principal:  &domain.Principal{ID: 2, Role: domain.RoleEmployee},
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "missing principal unauthenticated",
			principal:  nil,
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardedApp(tt.principal)
			resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
