package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"webstore/internal/domain"
	applog "webstore/internal/log"
	"webstore/internal/services"
)

type DiscountHandler struct {
	Discounts *services.DiscountService
}

// Validate handles GET /api/discounts/:code so the storefront can preview a
// total before checkout. Every rejection looks the same to the caller.
func (h *DiscountHandler) Validate(c *fiber.Ctx) error {
	code := c.Params("code")
	d, err := h.Discounts.Resolve(code, time.Now().UTC())
	if errors.Is(err, domain.ErrInvalidCoupon) {
		applog.Info(c, "discount.reject", map[string]any{"code": code})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invalid or expired coupon"})
	}
	if err != nil {
		applog.Error(c, "discount.lookup.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not validate coupon"})
	}
	if d.ID == "" {
		// empty code path; endpoint requires one
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invalid or expired coupon"})
	}
	return c.JSON(fiber.Map{"code": d.Code, "percentage": d.Percentage})
}
