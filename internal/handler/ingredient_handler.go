package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IngredientHandler struct {
	service service.IngredientService
}

func NewIngredientHandler(s service.IngredientService) *IngredientHandler {
	return &IngredientHandler{service: s}
}

// POST /api/v1/inventory/ingredients
func (h *IngredientHandler) CreateIngredient(c *fiber.Ctx) error {
	var req service.CreateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	ing, err := h.service.CreateIngredient(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Ingredient created", ing)
}

// PUT /api/v1/inventory/ingredients/:id/stock
func (h *IngredientHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var req service.UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	ing, err := h.service.UpdateStock(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Stock updated", ing)
}
