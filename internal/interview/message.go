package interview

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who wrote a message.
type Role string

const (
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// Message is one entry of an interview conversation. Messages are never
// edited once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role" validate:"required,oneof=agent user"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage builds a message with a fresh id.
func NewMessage(role Role, content string, at time.Time) Message {
	return Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: at.UTC(),
	}
}

// Transcript flattens messages into "Agent: ..." / "User: ..." paragraphs.
func Transcript(messages []Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		speaker := "User"
		if m.Role == RoleAgent {
			speaker = "Agent"
		}
		parts = append(parts, speaker+": "+m.Content)
	}
	return strings.Join(parts, "\n\n")
}

// ExchangeHistory drops the opening agent messages that precede the first
// user reply. Only exchanges count towards stage progression.
func ExchangeHistory(messages []Message) []Message {
	for i, m := range messages {
		if m.Role == RoleUser {
			return messages[i:]
		}
	}
	return nil
}

// Search returns the messages whose content contains query, ignoring case.
// An empty query matches everything.
func Search(messages []Message, query string) []Message {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return messages
	}
	var out []Message
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m.Content), query) {
			out = append(out, m)
		}
	}
	return out
}
