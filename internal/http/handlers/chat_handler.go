package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"webstore/internal/domain"
	applog "webstore/internal/log"
	"webstore/internal/services"
)

type ChatHandler struct {
	Chat *services.ChatService
}

// Log handles POST /api/chat/messages. Reply generation is done elsewhere;
// this endpoint only persists the transcript line.
func (h *ChatHandler) Log(c *fiber.Ctx) error {
	var m domain.ChatMessage
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if err := h.Chat.Log(m); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid chat message"})
		}
		applog.Error(c, "chat.save.fail", err, map[string]any{"session": m.SessionID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save message"})
	}
	return c.SendStatus(fiber.StatusCreated)
}

// History handles GET /api/chat/sessions/:id/messages, oldest first.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	msgs, err := h.Chat.History(c.Params("id"), limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
		}
		applog.Error(c, "chat.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load history"})
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

// Sessions handles GET /api/chat/sessions for the logged-in customer.
func (h *ChatHandler) Sessions(c *fiber.Ctx) error {
	u := currentCustomer(c)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	sessions, err := h.Chat.RecentSessions(u.Email, limit)
	if err != nil {
		applog.Error(c, "chat.sessions.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load sessions"})
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}
