package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "webstore/internal/log"
	"webstore/internal/services"
	"webstore/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if _, ok := validate.ID(productID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid productId",
		})
	}

	avail, err := h.Inv.CheckAvailability(productID)
	if err != nil {
		applog.Error(c, "availability.fail", err, map[string]any{"product": productID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not check availability",
		})
	}
	return c.JSON(avail)
}
