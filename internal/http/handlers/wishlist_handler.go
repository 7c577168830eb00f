package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "webstore/internal/log"
	"webstore/internal/services"
	"webstore/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// ensureSID keeps anonymous wishlists working for browser clients without an
// account; logged-in callers are keyed by their bearer token instead.
func (h *WishlistHandler) ensureSID(c *fiber.Ctx) string {
	if tok := bearerToken(c); tok != "" {
		return tok
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sid
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	items, err := h.Wish.List(sid)
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load wishlist"})
	}
	return c.JSON(fiber.Map{"items": items})
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if err := h.Wish.Save(sid, req.ProductID); err != nil {
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"product": req.ProductID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save item"})
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": req.ProductID})
	return c.SendStatus(fiber.StatusCreated)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if err := h.Wish.Unsave(sid, pid); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"product": pid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not remove item"})
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.SendStatus(fiber.StatusNoContent)
}
