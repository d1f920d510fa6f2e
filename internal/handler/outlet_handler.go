package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OutletHandler struct {
	service service.OutletService
}

func NewOutletHandler(s service.OutletService) *OutletHandler {
	return &OutletHandler{service: s}
}

// POST /api/v1/outlets
func (h *OutletHandler) CreateOutlet(c *fiber.Ctx) error {
	var req service.CreateOutletRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	outlet, err := h.service.CreateOutlet(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Outlet created", outlet)
}

// PUT /api/v1/outlets/:id
func (h *OutletHandler) UpdateOutlet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var req service.UpdateOutletRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	outlet, err := h.service.UpdateOutlet(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Outlet updated", outlet)
}

// DELETE /api/v1/outlets/:id
func (h *OutletHandler) DeleteOutlet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.service.DeleteOutlet(c.UserContext(), id, actorFrom(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Outlet deleted"})
}
