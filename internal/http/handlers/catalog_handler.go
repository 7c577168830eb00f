package handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "webstore/internal/log"
	"webstore/internal/services"
	"webstore/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "24"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	prods, err := h.Catalog.List(limit, offset)
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{"products": prods})
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Catalog.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		applog.Error(c, "catalog.get.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	return c.JSON(p)
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if len(q) > 50 {
		q = q[:50]
	}
	ptype := strings.TrimSpace(c.Query("type"))
	minPrice, _ := strconv.ParseFloat(c.Query("minPrice", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice", "0"), 64)
	limit, _ := strconv.Atoi(c.Query("limit", "24"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	prods, err := h.Catalog.Search(q, ptype, minPrice, maxPrice, limit, offset)
	if err != nil {
		applog.Error(c, "catalog.search.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}
	return c.JSON(fiber.Map{"products": prods})
}

func (h *CatalogHandler) Types(c *fiber.Ctx) error {
	types, err := h.Catalog.Types()
	if err != nil {
		applog.Error(c, "catalog.types.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load categories"})
	}
	return c.JSON(fiber.Map{"types": types})
}
