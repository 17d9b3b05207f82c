package handlers

import (
	applog "ventas/internal/log"
	"ventas/internal/metrics"
	"ventas/internal/services"
	"ventas/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	Users *services.UserService
	Auth  *services.AuthService
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.Users.Customers()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	cust, err := h.Users.CustomerByID(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(cust)
}

func (h *CustomerHandler) ByUsername(c *fiber.Ctx) error {
	username, ok := validate.Username(c.Params("username"))
	if !ok {
		return badRequest(c, "invalid username")
	}
	cust, err := h.Users.CustomerByUsername(username)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(cust)
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *CustomerHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	cust, err := h.Auth.AuthenticateCustomer(body.Username, body.Password)
	if err != nil {
		metrics.LoginFailures.Inc()
		applog.Security(c, "auth.login.fail", map[string]any{"username": body.Username})
		return jsonError(c, err)
	}
	applog.Audit(c, "auth.login", map[string]any{"customer_id": cust.ID})
	return c.JSON(cust)
}

type customerBody struct {
	Username       string `json:"username"`
	Password       string `json:"password,omitempty"`
	FirstNames     string `json:"first_names"`
	LastNames      string `json:"last_names"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	BirthDate      string `json:"birth_date"`
}

func (b customerBody) toInput() (services.CustomerInput, string, bool) {
	if _, ok := validate.Username(b.Username); !ok {
		return services.CustomerInput{}, "invalid username", false
	}
	if _, ok := validate.Name(b.FirstNames); !ok {
		return services.CustomerInput{}, "invalid first names", false
	}
	if _, ok := validate.Name(b.LastNames); !ok {
		return services.CustomerInput{}, "invalid last names", false
	}
	birth, ok := validate.Date(b.BirthDate)
	if !ok {
		return services.CustomerInput{}, "invalid birth date", false
	}
	return services.CustomerInput{
		Username:       b.Username,
		FirstNames:     b.FirstNames,
		LastNames:      b.LastNames,
		DocumentType:   b.DocumentType,
		DocumentNumber: b.DocumentNumber,
		BirthDate:      birth,
	}, "", true
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var body customerBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	in, msg, ok := body.toInput()
	if !ok {
		return badRequest(c, msg)
	}
	if !validate.Password(body.Password) {
		return badRequest(c, "password too weak")
	}
	cust, err := h.Users.RegisterCustomer(in, body.Password)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "customer.create", map[string]any{"id": cust.ID})
	return c.Status(fiber.StatusCreated).JSON(cust)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	var body customerBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	in, msg, ok := body.toInput()
	if !ok {
		return badRequest(c, msg)
	}
	cust, err := h.Users.UpdateCustomer(id, in)
	if err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "customer.update", map[string]any{"id": id})
	return c.JSON(cust)
}

type changePasswordBody struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *CustomerHandler) ChangePassword(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	var body changePasswordBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if !validate.Password(body.NewPassword) {
		return badRequest(c, "password too weak")
	}
	if err := h.Auth.ChangeCustomerPassword(id, body.OldPassword, body.NewPassword); err != nil {
		applog.Security(c, "auth.password.fail", map[string]any{"customer_id": id})
		return jsonError(c, err)
	}
	applog.Audit(c, "auth.password.change", map[string]any{"customer_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	if err := h.Users.DeleteCustomer(id); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "customer.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
