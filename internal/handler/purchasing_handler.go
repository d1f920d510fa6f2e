package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchasingHandler struct {
	service service.PurchasingService
}

func NewPurchasingHandler(s service.PurchasingService) *PurchasingHandler {
	return &PurchasingHandler{service: s}
}

// POST /api/v1/pembelian/suppliers
func (h *PurchasingHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	sup, err := h.service.CreateSupplier(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Supplier created", sup)
}

// POST /api/v1/pembelian/orders
func (h *PurchasingHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	po, err := h.service.CreatePurchaseOrder(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Purchase order created", po)
}

// POST /api/v1/pembelian/orders/:id/approve
func (h *PurchasingHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	po, err := h.service.ApprovePurchaseOrder(c.UserContext(), id, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Purchase order approved", po)
}

// POST /api/v1/pembelian/orders/:id/reject
func (h *PurchasingHandler) Reject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	po, err := h.service.RejectPurchaseOrder(c.UserContext(), id, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Purchase order rejected", po)
}
