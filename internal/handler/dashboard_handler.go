package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns per-module counters from the current snapshot
// Query params: outlet_id (optional)
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	outletID, err := outletFilter(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(h.service.GetDashboardStats(outletID))
}
