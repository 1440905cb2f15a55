package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/domain"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// RequireAdmin ensures the principal holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("not authenticated")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin only")
		}
		return c.Next()
	}
}
