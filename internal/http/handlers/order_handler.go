package handlers

import (
	"ventas/internal/services"
	"ventas/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler is read-only: orders are created by checkout, never by the
// transport layer.
type OrderHandler struct {
	Orders *services.OrderService
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.Orders.List()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) ByCustomer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("customerId"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	out, err := h.Orders.ByCustomer(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) ByDateRange(c *fiber.Ctx) error {
	start, ok := validate.Date(c.Params("start"))
	if !ok {
		return badRequest(c, "invalid start date")
	}
	end, ok := validate.Date(c.Params("end"))
	if !ok {
		return badRequest(c, "invalid end date")
	}
	out, err := h.Orders.ByDateRange(start, end)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}
