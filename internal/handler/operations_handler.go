package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OperationsHandler struct {
	service service.OperationsService
}

func NewOperationsHandler(s service.OperationsService) *OperationsHandler {
	return &OperationsHandler{service: s}
}

// POST /api/v1/operasional/checklists
func (h *OperationsHandler) CreateChecklist(c *fiber.Ctx) error {
	var req service.CreateChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	item, err := h.service.CreateChecklist(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Checklist item created", item)
}

// ToggleChecklist accepts an optional body carrying notes.
// POST /api/v1/operasional/checklists/:id/toggle
func (h *OperationsHandler) ToggleChecklist(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var req service.ToggleChecklistRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidJSON(c)
		}
	}

	item, err := h.service.ToggleChecklist(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Checklist item toggled", item)
}

// POST /api/v1/operasional/shifts
func (h *OperationsHandler) OpenShift(c *fiber.Ctx) error {
	var req service.OpenShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	shift, err := h.service.OpenShift(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Shift opened", shift)
}

// POST /api/v1/operasional/shifts/:id/close
func (h *OperationsHandler) CloseShift(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var req service.CloseShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	shift, err := h.service.CloseShift(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Shift closed", shift)
}
