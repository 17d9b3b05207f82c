package handlers

import (
	"errors"

	"ventas/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// jsonError maps service sentinels onto HTTP statuses. Anything unmapped is
// a 500 with a generic body so internals never leak.
func jsonError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidArgument):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrOutOfStock):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrCartPurchased):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrCartNotPurchased):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrBadCreds):
		status, msg = fiber.StatusUnauthorized, err.Error()
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
