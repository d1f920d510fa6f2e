package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MaintenanceHandler struct {
	service service.MaintenanceService
}

func NewMaintenanceHandler(s service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: s}
}

// POST /api/v1/maintenance/assets
func (h *MaintenanceHandler) CreateAsset(c *fiber.Ctx) error {
	var req service.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	asset, err := h.service.CreateAsset(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Asset registered", asset)
}

// PUT /api/v1/maintenance/assets/:id/status
func (h *MaintenanceHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var req service.AssetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	asset, err := h.service.SetAssetStatus(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Asset status updated", asset)
}
