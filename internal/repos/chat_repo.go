package repos

import (
	"github.com/jmoiron/sqlx"

	"webstore/internal/domain"
)

type ChatRepo struct{ db *sqlx.DB }

func NewChatRepo(db *sqlx.DB) *ChatRepo { return &ChatRepo{db: db} }

// SaveMessage appends a transcript line and keeps the session roll-up row in
// step with it. Both writes happen in one transaction so total_messages can
// never drift from the message count.
func (r *ChatRepo) SaveMessage(m domain.ChatMessage) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	sessionType := "customer"
	if m.Sender == "admin" || m.Sender == "admin_bot" {
		sessionType = "admin"
	}
	if _, err := tx.Exec(`
		INSERT INTO chat_sessions(session_id, customer_email, session_type, first_message_at, last_message_at, total_messages)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, 1)
		ON CONFLICT(session_id) DO UPDATE SET
		  last_message_at = CURRENT_TIMESTAMP,
		  total_messages = total_messages + 1,
		  customer_email = CASE WHEN excluded.customer_email != '' THEN excluded.customer_email ELSE customer_email END
	`, m.SessionID, m.CustomerEmail, sessionType); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO chat_messages(session_id, sender, message, intent, confidence, current_page, response_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.SessionID, m.Sender, m.Message, m.Intent, m.Confidence, m.CurrentPage, m.ResponseTimeMs); err != nil {
		return err
	}

	return tx.Commit()
}

// History returns up to limit messages for a session, oldest first.
func (r *ChatRepo) History(sessionID string, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	var recent []domain.ChatMessage
	err := r.db.Select(&recent, `
		SELECT id, session_id, sender, message, intent, confidence, current_page, response_time_ms, created_at
		FROM chat_messages
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	// reverse to oldest-first
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}

// RecentSessions lists a customer's latest sessions, newest activity first.
func (r *ChatRepo) RecentSessions(customerEmail string, limit int) ([]domain.ChatSession, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []domain.ChatSession
	err := r.db.Select(&out, `
		SELECT session_id, customer_email, session_type,
		       COALESCE(first_message_at,'') AS first_message_at,
		       COALESCE(last_message_at,'') AS last_message_at,
		       total_messages
		FROM chat_sessions
		WHERE customer_email = ?
		ORDER BY last_message_at DESC
		LIMIT ?
	`, customerEmail, limit)
	return out, err
}
