package handler

import (
	"resto-erp-ws/internal/access"

	"github.com/gofiber/fiber/v2"
)

// NavigationHandler answers route guard questions for the UI router.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// GET /api/v1/navigation/check?path=/inventory/dashboard
func (h *NavigationHandler) Check(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	d := access.CheckAccess(access.RoleFrom(c), path)
	return c.JSON(fiber.Map{
		"path":        path,
		"pattern":     access.RoutePattern(path),
		"allowed":     d.Allowed,
		"redirect_to": d.RedirectTo,
	})
}

// GET /api/v1/navigation/routes
func (h *NavigationHandler) Routes(c *fiber.Ctx) error {
	role := access.RoleFrom(c)
	if role == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required", "redirect_to": access.LoginPath})
	}
	patterns := access.AllowedPatterns(*role)
	if patterns == nil {
		patterns = []string{}
	}
	return c.JSON(fiber.Map{"role": *role, "routes": patterns})
}
