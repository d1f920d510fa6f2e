package handler

import (
	"errors"
	"log"
	"strconv"

	"resto-erp-ws/internal/config"
	"resto-erp-ws/internal/middleware"
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

var errInvalidID = errors.New("invalid id")

// actorFrom reads the caller set by RequireAuth.
func actorFrom(c *fiber.Ctx) service.Actor {
	id, _ := c.Locals(middleware.UserIDLocal).(uint)
	name, _ := c.Locals(middleware.UserNameLocal).(string)
	if name == "" {
		name = "Unknown"
	}
	return service.Actor{ID: id, Name: name}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// outletFilter returns the outlet_id query filter. Callers bound to an
// outlet only ever see their own outlet.
func outletFilter(c *fiber.Ctx) (*uint, error) {
	if own, ok := c.Locals(middleware.UserOutletLocal).(uint); ok {
		return &own, nil
	}
	raw := c.Query("outlet_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return nil, errInvalidID
	}
	v := uint(id)
	return &v, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errInvalidID),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrSameOutlet),
		errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrPercentageRange),
		errors.Is(err, service.ErrOutletRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrOutletNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSupplierNotFound):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrShiftClosed),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPromotionInactive):
		return fiber.StatusConflict
	case errors.Is(err, config.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("handler: %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message, "data": data})
}

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"message": message, "data": data})
}

// RequireBackend rejects feature requests while the database is not configured.
func RequireBackend(configErr error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if configErr != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":         configErr.Error(),
				"is_configured": false,
			})
		}
		return c.Next()
	}
}
