package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DistributionHandler struct {
	service service.DistributionService
}

func NewDistributionHandler(s service.DistributionService) *DistributionHandler {
	return &DistributionHandler{service: s}
}

// POST /api/v1/distribusi/transfers
func (h *DistributionHandler) CreateTransfer(c *fiber.Ctx) error {
	var req service.CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	d, err := h.service.CreateTransfer(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Transfer created", d)
}

// POST /api/v1/distribusi/transfers/:id/deliver
func (h *DistributionHandler) Deliver(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	d, err := h.service.DeliverTransfer(c.UserContext(), id, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Transfer delivered", d)
}
