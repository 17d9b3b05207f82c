package handlers

import (
	applog "ventas/internal/log"
	"ventas/internal/services"
	"ventas/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	out, err := h.Cart.List()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid cart id")
	}
	cart, err := h.Cart.Get(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) ByCustomer(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("customerId"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	out, err := h.Cart.ByCustomer(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

type cartBody struct {
	CustomerID string `json:"customer_id"`
}

func (h *CartHandler) Create(c *fiber.Ctx) error {
	var body cartBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	id, ok := validate.ID(body.CustomerID)
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	cart, err := h.Cart.Create(id)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "cart.create", map[string]any{"cart_id": cart.ID, "customer_id": id})
	return c.Status(fiber.StatusCreated).JSON(cart)
}

func (h *CartHandler) Reassign(c *fiber.Ctx) error {
	cartID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid cart id")
	}
	var body cartBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	customerID, ok := validate.ID(body.CustomerID)
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	cart, err := h.Cart.Reassign(cartID, customerID)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "cart.reassign", map[string]any{"cart_id": cartID, "customer_id": customerID})
	return c.JSON(cart)
}

// Purchase is the checkout endpoint: one-way, all-or-nothing.
func (h *CartHandler) Purchase(c *fiber.Ctx) error {
	cartID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid cart id")
	}
	order, err := h.Checkout.Purchase(cartID)
	if err != nil {
		applog.Error(c, "checkout.purchase.fail", err, map[string]any{"cart_id": cartID})
		return jsonError(c, err)
	}
	applog.Audit(c, "checkout.purchase", map[string]any{"cart_id": cartID, "order_id": order.ID})
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *CartHandler) Delete(c *fiber.Ctx) error {
	cartID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid cart id")
	}
	if err := h.Cart.Delete(cartID); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "cart.delete", map[string]any{"cart_id": cartID})
	return c.SendStatus(fiber.StatusNoContent)
}
