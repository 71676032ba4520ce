package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/venue-api/internal/application/dto"
	"github.com/jhoicas/venue-api/internal/domain"
)

// permissionChecker es el contrato mínimo que necesita el middleware. Lo implementa
// la matriz casbin de infrastructure/authz.
type permissionChecker interface {
	Allowed(role, action string) bool
}

// RequirePermission verifica que el rol del token tenga la acción en su conjunto de
// permisos. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 MISSING_ROLE → token sin rol.
//   - 403 FORBIDDEN    → la acción no está en los permisos del rol.
func RequirePermission(checker permissionChecker, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		if !checker.Allowed(role, action) {
			return writeError(c, &domain.PermissionDeniedError{UserID: GetUserID(c), Role: role, Action: action})
		}
		return c.Next()
	}
}
