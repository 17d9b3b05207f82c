package handlers

import (
	applog "ventas/internal/log"
	"ventas/internal/services"
	"ventas/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.Catalog.List()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) ByName(c *fiber.Ctx) error {
	name, ok := validate.Name(c.Params("name"))
	if !ok {
		return badRequest(c, "invalid product name")
	}
	out, err := h.Catalog.ByName(name)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	out, err := h.Catalog.ByCategory(c.Params("category"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductHandler) ByGender(c *fiber.Ctx) error {
	out, err := h.Catalog.ByGender(c.Params("gender"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductHandler) BySize(c *fiber.Ctx) error {
	out, err := h.Catalog.BySize(c.Params("size"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

type productBody struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Units       int    `json:"units"`
	Gender      string `json:"gender"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Size        string `json:"size"`
}

func (b productBody) toInput() (services.ProductInput, bool) {
	price, err := decimal.NewFromString(b.Price)
	if err != nil {
		return services.ProductInput{}, false
	}
	return services.ProductInput{
		Name:        b.Name,
		Price:       price,
		Image:       b.Image,
		Description: b.Description,
		Units:       b.Units,
		Gender:      b.Gender,
		Category:    b.Category,
		Brand:       b.Brand,
		Size:        b.Size,
	}, true
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.Name(body.Name); !ok {
		return badRequest(c, "invalid product name")
	}
	in, ok := body.toInput()
	if !ok {
		return badRequest(c, "invalid price")
	}
	p, err := h.Catalog.Create(in)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	in, ok := body.toInput()
	if !ok {
		return badRequest(c, "invalid price")
	}
	p, err := h.Catalog.Update(id, in)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": id})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
