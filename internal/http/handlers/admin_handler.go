package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"webstore/internal/domain"
	applog "webstore/internal/log"
	"webstore/internal/repos"
	"webstore/internal/validate"
)

type AdminHandler struct {
	Orders   *repos.OrderRepo
	Inv      *repos.InventoryRepo
	LowStock int
}

var orderStatuses = map[string]bool{
	"PLACED": true, "SHIPPED": true, "DELIVERED": true, "CANCELED": true,
}

// Dashboard returns the latest orders plus low-stock alerts in one payload.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(20)
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load dashboard"})
	}
	low, err := h.Inv.LowStock(h.LowStock)
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load dashboard"})
	}
	return c.JSON(fiber.Map{"orders": orders, "lowStock": low})
}

func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Inv.ListAll()
	if err != nil {
		applog.Error(c, "admin.inventory.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load inventory"})
	}
	return c.JSON(fiber.Map{"inventory": rows})
}

type stockUpdate struct {
	ProductID     string `json:"productId"`
	StockQuantity int    `json:"stockQuantity"`
}

func (h *AdminHandler) UpdateInventory(c *fiber.Ctx) error {
	var req stockUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if _, ok := validate.ID(req.ProductID); !ok || req.StockQuantity < 0 {
		applog.Security(c, "admin.inventory.validation.fail", map[string]any{"product": req.ProductID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product or quantity"})
	}
	if err := h.Inv.UpsertQty(req.ProductID, req.StockQuantity); err != nil {
		applog.Error(c, "admin.inventory.update.fail", err, map[string]any{"product": req.ProductID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update inventory"})
	}
	applog.Audit(c, "admin.inventory.update", map[string]any{"product": req.ProductID, "qty": req.StockQuantity})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || !orderStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}
	if err := h.Orders.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		applog.Error(c, "admin.order.status.fail", err, map[string]any{"order": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update order"})
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order": id, "status": req.Status})
	return c.SendStatus(fiber.StatusNoContent)
}
