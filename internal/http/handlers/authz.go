package handlers

import (
	"encoding/base64"
	"strings"

	applog "ventas/internal/log"
	"ventas/internal/metrics"
	"ventas/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates mutating catalog and account routes behind admin
// credentials sent as HTTP Basic auth. There is no session state; every
// request re-verifies.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, password, ok := basicCreds(c)
		if !ok {
			c.Set("WWW-Authenticate", `Basic realm="ventas admin"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "admin credentials required"})
		}
		admin, err := auth.AuthenticateAdmin(username, password)
		if err != nil {
			metrics.LoginFailures.Inc()
			applog.Security(c, "access.denied.admin", map[string]any{"username": username})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "admin credentials required"})
		}
		c.Locals("admin", admin)
		return c.Next()
	}
}

func basicCreds(c *fiber.Ctx) (user, pass string, ok bool) {
	const prefix = "Basic "
	h := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(h, prefix) {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(h[len(prefix):])
	if err != nil {
		return "", "", false
	}
	user, pass, ok = strings.Cut(string(raw), ":")
	return user, pass, ok
}
