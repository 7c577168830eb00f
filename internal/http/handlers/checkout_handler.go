package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"webstore/internal/domain"
	applog "webstore/internal/log"
	"webstore/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

type checkoutRequest struct {
	CartLines       []domain.CartLine      `json:"cartLines"`
	PaymentMethod   string                 `json:"paymentMethod"`
	CardDetails     domain.CardDetails     `json:"cardDetails"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	DiscountCode    string                 `json:"discountCode"`
	IdempotencyKey  string                 `json:"idempotencyKey"`
}

// Place handles POST /api/checkout. The tracking number is the only value a
// caller needs to identify the order afterwards.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	u := currentCustomer(c)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "checkout.body.malformed", nil)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if key := c.Get("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}

	tracking, err := h.Checkout.Place(services.CheckoutInput{
		CustomerID:     u.ID,
		Lines:          req.CartLines,
		PaymentMethod:  req.PaymentMethod,
		Card:           req.CardDetails,
		Shipping:       req.ShippingAddress,
		DiscountCode:   req.DiscountCode,
		IdempotencyKey: req.IdempotencyKey,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCoupon):
		applog.Security(c, "checkout.coupon.reject", map[string]any{"code": req.DiscountCode})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or expired coupon"})
	case errors.Is(err, domain.ErrInvalidInput):
		applog.Security(c, "checkout.validation.fail", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid checkout data"})
	case errors.Is(err, domain.ErrOutOfStock):
		applog.Info(c, "checkout.stock.short", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "insufficient stock"})
	default:
		// rollback already happened; never leak driver/schema detail
		applog.Error(c, "checkout.tx.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout failed, please try again"})
	}

	applog.Audit(c, "checkout.place", map[string]any{
		"customer_id": u.ID,
		"tracking":    tracking,
		"lines":       len(req.CartLines),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"trackingNumber": tracking})
}
