package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"webstore/internal/config"
	"webstore/internal/http/handlers"
	applog "webstore/internal/log"
	"webstore/internal/repos"
	"webstore/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	custRepo := repos.NewCustomerRepo(db)
	authSvc := &services.AuthService{Customers: custRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with a generic message; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	api := app.Group("/api")

	// Catalog (public)
	api.Get("/products", deps.CatalogHandler.List)
	api.Get("/products/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.CatalogHandler.Search)
	api.Get("/products/types", deps.CatalogHandler.Types)
	api.Get("/products/:id", deps.CatalogHandler.Get)

	// Availability (public, throttled)
	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/v1/availability", availLimiter, deps.InventoryHandler.Check)

	// Discount preview
	api.Get("/discounts/:code", deps.DiscountHandler.Validate)

	// Checkout & orders
	api.Post("/checkout", handlers.RequireUser(authSvc), deps.CheckoutHandler.Place)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/track/:trackingNumber", deps.OrderHandler.Track)

	// Wishlist
	api.Get("/wishlist", deps.WishlistHandler.List)
	api.Post("/wishlist", deps.WishlistHandler.Save)
	api.Delete("/wishlist/:productId", deps.WishlistHandler.Unsave)

	// Chat transcript persistence
	api.Post("/chat/messages", deps.ChatHandler.Log)
	api.Get("/chat/sessions/:id/messages", deps.ChatHandler.History)
	api.Get("/chat/sessions", handlers.RequireUser(authSvc), deps.ChatHandler.Sessions)

	// Auth (login throttled)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	api.Post("/logout", authH.Logout)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/dashboard", deps.AdminHandler.Dashboard)
	admin.Get("/inventory", deps.AdminHandler.Inventory)
	admin.Post("/inventory", deps.AdminHandler.UpdateInventory)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
