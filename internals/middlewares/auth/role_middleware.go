package auth

import (
	"github.com/gofiber/fiber/v2"

	"staffhub_backend/internals/constants"
	helper "staffhub_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError gates a route group on the closed role set.
// Must run after AuthMiddleware (it reads the role from Locals).
func RoleMiddlewareWithCustomError(allowedRoles []constants.Role, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helper.GetRoleFromToken(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// OnlyRoles is the short form used at route registration.
func OnlyRoles(customMessage string, roles ...constants.Role) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
