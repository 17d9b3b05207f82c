package handlers

import (
	applog "ventas/internal/log"
	"ventas/internal/metrics"
	"ventas/internal/services"
	"ventas/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Users *services.UserService
	Auth  *services.AuthService
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	out, err := h.Users.Admins()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid admin id")
	}
	a, err := h.Users.AdminByID(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(a)
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	a, err := h.Auth.AuthenticateAdmin(body.Username, body.Password)
	if err != nil {
		metrics.LoginFailures.Inc()
		applog.Security(c, "auth.admin.login.fail", map[string]any{"username": body.Username})
		return jsonError(c, err)
	}
	applog.Audit(c, "auth.admin.login", map[string]any{"admin_id": a.ID})
	return c.JSON(a)
}

type adminBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var body adminBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if _, ok := validate.Username(body.Username); !ok {
		return badRequest(c, "invalid username")
	}
	if !validate.Password(body.Password) {
		return badRequest(c, "password too weak")
	}
	a, err := h.Users.RegisterAdmin(body.Username, body.Password)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "admin.create", map[string]any{"id": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid admin id")
	}
	var body changePasswordBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if !validate.Password(body.NewPassword) {
		return badRequest(c, "password too weak")
	}
	if err := h.Auth.ChangeAdminPassword(id, body.OldPassword, body.NewPassword); err != nil {
		applog.Security(c, "auth.admin.password.fail", map[string]any{"admin_id": id})
		return jsonError(c, err)
	}
	applog.Audit(c, "auth.admin.password.change", map[string]any{"admin_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid admin id")
	}
	if err := h.Users.DeleteAdmin(id); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "admin.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
