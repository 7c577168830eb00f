package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"webstore/internal/domain"
	applog "webstore/internal/log"
	"webstore/internal/services"
)

// bearerToken pulls the session token from the Authorization header, falling
// back to the sid cookie for browser clients.
func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Cookies("sid")
}

func currentCustomer(c *fiber.Ctx) *domain.Customer {
	u, _ := c.Locals("customer").(*domain.Customer)
	return u
}

// RequireUser enforces a logged-in customer for JSON endpoints.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		u, err := auth.Current(tok)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.user", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		c.Locals("customer", u)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		u, err := auth.Current(tok)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		c.Locals("customer", u)
		return c.Next()
	}
}
