package handlers

import (
	applog "ventas/internal/log"
	"ventas/internal/services"
	"ventas/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	Cart *services.CartService
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.Cart.Items()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid item id")
	}
	it, err := h.Cart.Item(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(it)
}

func (h *ItemHandler) ByCart(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("cartId"))
	if !ok {
		return badRequest(c, "invalid cart id")
	}
	out, err := h.Cart.ItemsByCart(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *ItemHandler) ByProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	out, err := h.Cart.ItemsByProduct(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

type itemBody struct {
	CartID    string `json:"cart_id"`
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var body itemBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	cartID, ok := validate.ID(body.CartID)
	if !ok {
		return badRequest(c, "invalid cart id")
	}
	productID, ok := validate.ID(body.ProductID)
	if !ok {
		return badRequest(c, "invalid product id")
	}
	it, err := h.Cart.AddItem(cartID, productID, body.Qty)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "cart.item.add", map[string]any{"cart_id": cartID, "item_id": it.ID})
	return c.Status(fiber.StatusCreated).JSON(it)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid item id")
	}
	var body itemBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	cartID, ok := validate.ID(body.CartID)
	if !ok {
		return badRequest(c, "invalid cart id")
	}
	productID, ok := validate.ID(body.ProductID)
	if !ok {
		return badRequest(c, "invalid product id")
	}
	it, err := h.Cart.UpdateItem(id, body.Qty, productID, cartID)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "cart.item.update", map[string]any{"item_id": id})
	return c.JSON(it)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid item id")
	}
	if err := h.Cart.RemoveItem(id); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "cart.item.remove", map[string]any{"item_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
