package domain

// ChatMessage is one line of a support transcript. Reply generation lives in
// a separate service; this backend only persists and serves the log.
type ChatMessage struct {
	ID             int64   `db:"id" json:"-"`
	SessionID      string  `db:"session_id" json:"sessionId"`
	CustomerEmail  string  `db:"-" json:"customerEmail,omitempty"`
	Sender         string  `db:"sender" json:"sender"` // user | bot | admin | admin_bot
	Message        string  `db:"message" json:"message"`
	Intent         string  `db:"intent" json:"intent,omitempty"`
	Confidence     float64 `db:"confidence" json:"confidence,omitempty"`
	CurrentPage    string  `db:"current_page" json:"currentPage,omitempty"`
	ResponseTimeMs int64   `db:"response_time_ms" json:"responseTimeMs,omitempty"`
	CreatedAt      string  `db:"created_at" json:"timestamp"`
}

type ChatSession struct {
	SessionID      string `db:"session_id" json:"sessionId"`
	CustomerEmail  string `db:"customer_email" json:"customerEmail,omitempty"`
	SessionType    string `db:"session_type" json:"sessionType"` // customer | admin
	FirstMessageAt string `db:"first_message_at" json:"firstMessageAt"`
	LastMessageAt  string `db:"last_message_at" json:"lastMessageAt"`
	TotalMessages  int    `db:"total_messages" json:"totalMessages"`
}
