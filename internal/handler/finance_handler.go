package handler

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type FinanceHandler struct {
	service service.FinanceService
}

func NewFinanceHandler(s service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: s}
}

// POST /api/v1/keuangan/cash-flow
func (h *FinanceHandler) CreateCashFlow(c *fiber.Ctx) error {
	var req service.CreateCashFlowRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.service.CreateCashFlow(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Cash flow recorded", entry)
}

// GET /api/v1/keuangan/summary?outlet_id=
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	outletID, err := outletFilter(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(h.service.Summary(outletID))
}

// Export sends the journals as an xlsx attachment.
// GET /api/v1/keuangan/export?outlet_id=
func (h *FinanceHandler) Export(c *fiber.Ctx) error {
	outletID, err := outletFilter(c)
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	if err := h.service.Export(&buf, outletID); err != nil {
		log.Printf("handler: %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate Excel"})
	}

	filename := fmt.Sprintf("keuangan-%s.xlsx", time.Now().Format("20060102"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
