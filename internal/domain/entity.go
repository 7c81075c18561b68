package domain

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) String() string {
	return string(r)
}

type MessageType string

const (
	TypeText            MessageType = "text"
	TypeImage           MessageType = "image"
	TypeImageGeneration MessageType = "image_generation"
)

func (t MessageType) String() string {
	return string(t)
}

// Message is the sole persisted conversation entity. Immutable after
// creation; the only destructive operation is a full-session wipe.
// JSON field names follow the client wire format.
type Message struct {
	ID        string      `json:"id"`
	SessionID string      `json:"sessionId"`
	Role      Role        `json:"role"`
	Content   string      `json:"content"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	Type      MessageType `json:"messageType"`
	CreatedAt time.Time   `json:"timestamp"`
}

func (m *Message) IsUser() bool {
	return m.Role == RoleUser
}
