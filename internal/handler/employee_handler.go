package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	service service.EmployeeService
}

func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

// POST /api/v1/hr/employees
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req service.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	emp, err := h.service.CreateEmployee(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Employee created", emp)
}

// PUT /api/v1/hr/employees/:id/status
func (h *EmployeeHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var req service.EmployeeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	emp, err := h.service.SetEmployeeStatus(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Employee status updated", emp)
}
