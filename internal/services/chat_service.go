package services

import (
	"fmt"

	"webstore/internal/domain"
	"webstore/internal/repos"
	"webstore/internal/validate"
)

var chatSenders = map[string]bool{"user": true, "bot": true, "admin": true, "admin_bot": true}

type ChatService struct {
	Chats *repos.ChatRepo
}

func NewChatService(chats *repos.ChatRepo) *ChatService {
	return &ChatService{Chats: chats}
}

func (s *ChatService) Log(m domain.ChatMessage) error {
	if _, ok := validate.ID(m.SessionID); !ok {
		return fmt.Errorf("%w: bad session id", domain.ErrInvalidInput)
	}
	if !chatSenders[m.Sender] {
		return fmt.Errorf("%w: bad sender", domain.ErrInvalidInput)
	}
	if m.Message == "" || len(m.Message) > 4000 {
		return fmt.Errorf("%w: bad message", domain.ErrInvalidInput)
	}
	if m.CustomerEmail != "" {
		if _, ok := validate.Email(m.CustomerEmail); !ok {
			return fmt.Errorf("%w: bad customer email", domain.ErrInvalidInput)
		}
	}
	return s.Chats.SaveMessage(m)
}

func (s *ChatService) History(sessionID string, limit int) ([]domain.ChatMessage, error) {
	if _, ok := validate.ID(sessionID); !ok {
		return nil, fmt.Errorf("%w: bad session id", domain.ErrInvalidInput)
	}
	return s.Chats.History(sessionID, limit)
}

func (s *ChatService) RecentSessions(email string, limit int) ([]domain.ChatSession, error) {
	if _, ok := validate.Email(email); !ok {
		return nil, fmt.Errorf("%w: bad email", domain.ErrInvalidInput)
	}
	return s.Chats.RecentSessions(email, limit)
}
