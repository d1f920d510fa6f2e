package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PromotionHandler struct {
	service service.PromotionService
}

func NewPromotionHandler(s service.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: s}
}

// POST /api/v1/promo/promotions
func (h *PromotionHandler) CreatePromotion(c *fiber.Ctx) error {
	var req service.CreatePromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	promo, err := h.service.CreatePromotion(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Promotion created", promo)
}
