package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"ventas/internal/config"
	"ventas/internal/http/handlers"
	applog "ventas/internal/log"
	"ventas/internal/metrics"
	"ventas/internal/repos"
)

func main() {
	cfg := config.Load()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	deps := handlers.NewDeps(db)

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry later"})
		},
	})
	admin := handlers.RequireAdmin(deps.Auth)

	api := app.Group("/api/v1")

	// Products
	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/name/:name", deps.ProductHandler.ByName)
	products.Get("/category/:category", deps.ProductHandler.ByCategory)
	products.Get("/gender/:gender", deps.ProductHandler.ByGender)
	products.Get("/size/:size", deps.ProductHandler.BySize)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Post("/", admin, deps.ProductHandler.Create)
	products.Put("/:id", admin, deps.ProductHandler.Update)
	products.Delete("/:id", admin, deps.ProductHandler.Delete)

	// Customers
	customers := api.Group("/customers")
	customers.Get("/", admin, deps.CustomerHandler.List)
	customers.Get("/username/:username", deps.CustomerHandler.ByUsername)
	customers.Get("/:id", deps.CustomerHandler.Get)
	customers.Post("/login", loginLimiter, deps.CustomerHandler.Login)
	customers.Post("/", deps.CustomerHandler.Create)
	customers.Put("/:id", deps.CustomerHandler.Update)
	customers.Put("/:id/password", deps.CustomerHandler.ChangePassword)
	customers.Delete("/:id", admin, deps.CustomerHandler.Delete)

	// Administrators
	admins := api.Group("/admins")
	admins.Get("/", admin, deps.AdminHandler.List)
	admins.Get("/:id", admin, deps.AdminHandler.Get)
	admins.Post("/login", loginLimiter, deps.AdminHandler.Login)
	admins.Post("/", admin, deps.AdminHandler.Create)
	admins.Put("/:id/password", deps.AdminHandler.ChangePassword)
	admins.Delete("/:id", admin, deps.AdminHandler.Delete)

	// Carts & checkout
	carts := api.Group("/carts")
	carts.Get("/", deps.CartHandler.List)
	carts.Get("/customer/:customerId", deps.CartHandler.ByCustomer)
	carts.Get("/:id", deps.CartHandler.Get)
	carts.Get("/:cartId/items", deps.ItemHandler.ByCart)
	carts.Post("/", deps.CartHandler.Create)
	carts.Put("/:id/customer", deps.CartHandler.Reassign)
	carts.Post("/:id/purchase", deps.CartHandler.Purchase)
	carts.Delete("/:id", deps.CartHandler.Delete)

	// Line items
	items := api.Group("/items")
	items.Get("/", deps.ItemHandler.List)
	items.Get("/product/:productId", deps.ItemHandler.ByProduct)
	items.Get("/:id", deps.ItemHandler.Get)
	items.Post("/", deps.ItemHandler.Create)
	items.Put("/:id", deps.ItemHandler.Update)
	items.Delete("/:id", deps.ItemHandler.Delete)

	// Orders (read-only projections)
	orders := api.Group("/orders")
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/customer/:customerId", deps.OrderHandler.ByCustomer)
	orders.Get("/dates/:start/:end", deps.OrderHandler.ByDateRange)
	orders.Get("/:id", deps.OrderHandler.Get)

	// Health & metrics
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
