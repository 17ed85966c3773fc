// file: internals/helpers/claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"staffhub_backend/internals/constants"
)

/* ===============================
   Typed session accessors
   The auth middleware stores verified claims in c.Locals; everything
   downstream reads them through these helpers, never directly.
=================================*/

const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocUserName = "user_name"
)

// GetUserIDFromToken returns the authenticated user's ID from Locals.
// 401 when not logged in, 400 when the stored value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User is not logged in")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID in token is not valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID in token is not valid")
	}
}

// GetRoleFromToken returns the authenticated role from Locals.
func GetRoleFromToken(c *fiber.Ctx) (constants.Role, error) {
	v, ok := c.Locals(LocUserRole).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing role information")
	}
	role := constants.Role(strings.ToLower(strings.TrimSpace(v)))
	if !role.Valid() {
		return "", fiber.NewError(fiber.StatusForbidden, "Unknown role on token")
	}
	return role, nil
}

// GetUserNameFromToken returns the display name claim, empty when absent.
func GetUserNameFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserName).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// ResolveTargetUserID decides whose data a request operates on.
// Employees always act on themselves; admins may pass ?userId= to act on
// another account (the admin "set user" flow of the dashboard).
func ResolveTargetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	selfID, err := GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}

	raw := strings.TrimSpace(c.Query("userId"))
	if raw == "" {
		return selfID, nil
	}

	target, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "userId is not a valid UUID")
	}
	if target == selfID {
		return selfID, nil
	}

	role, err := GetRoleFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	if role != constants.RoleAdmin {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Only admins may act on another user's data")
	}
	return target, nil
}
