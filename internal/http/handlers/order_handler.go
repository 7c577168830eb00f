package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"webstore/internal/domain"
	applog "webstore/internal/log"
	"webstore/internal/repos"
	"webstore/internal/validate"
)

type OrderHandler struct {
	Repo *repos.OrderRepo
}

// Track handles GET /api/orders/track/:trackingNumber.
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	tn, ok := validate.TrackingNumber(c.Params("trackingNumber"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tracking number"})
	}
	out, err := h.Repo.ByTracking(tn)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	if err != nil {
		applog.Error(c, "order.track.fail", err, map[string]any{"tracking": tn})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load order"})
	}
	return c.JSON(out)
}

// History lists orders for the current logged-in customer.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentCustomer(c)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	orders, err := h.Repo.ListByCustomer(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}
