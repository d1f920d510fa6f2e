package access

import (
	"strings"

	"resto-erp-ws/internal/model"

	"github.com/gofiber/fiber/v2"
)

// RoleLocal is the fiber Locals key holding the caller's model.Role.
const RoleLocal = "user_role"

// RoleFrom returns the role stored by the auth middleware, or nil.
func RoleFrom(c *fiber.Ctx) *model.Role {
	role, ok := c.Locals(RoleLocal).(model.Role)
	if !ok {
		return nil
	}
	return &role
}

// Guard applies CheckAccess to the request path with prefix removed, so
// "/api/v1/inventory/ingredients" is checked as "/inventory/ingredients".
func Guard(prefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimPrefix(c.Path(), prefix)
		role := RoleFrom(c)

		d := CheckAccess(role, path)
		if d.Allowed {
			return c.Next()
		}
		if role == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":       "Authentication required",
				"redirect_to": d.RedirectTo,
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":       "Forbidden: role " + string(*role) + " may not access " + RoutePattern(path),
			"redirect_to": d.RedirectTo,
		})
	}
}
