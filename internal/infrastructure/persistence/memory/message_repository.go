package memory

import (
	"context"
	"sync"
	"time"

	"gemini-chat/internal/domain"

	"github.com/google/uuid"
)

// MessageRepository is the default in-process store. Each call is
// individually atomic; read-history-then-append across two requests is
// deliberately not serialized.
type MessageRepository struct {
	mu        sync.Mutex
	bySession map[string][]*domain.Message
	lastAt    map[string]time.Time
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{
		bySession: make(map[string][]*domain.Message),
		lastAt:    make(map[string]time.Time),
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *msg
	stored.ID = uuid.NewString()
	if stored.Type == "" {
		stored.Type = domain.TypeText
	}
	// Timestamps are the sole sort key; keep them strictly increasing
	// per session even when creates land within clock resolution.
	now := time.Now()
	if last, ok := r.lastAt[stored.SessionID]; ok && !now.After(last) {
		now = last.Add(time.Microsecond)
	}
	stored.CreatedAt = now
	r.lastAt[stored.SessionID] = now

	r.bySession[stored.SessionID] = append(r.bySession[stored.SessionID], &stored)

	out := stored
	return &out, nil
}

func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.bySession[sessionID]
	messages := make([]*domain.Message, 0, len(stored))
	for _, msg := range stored {
		copied := *msg
		messages = append(messages, &copied)
	}
	return messages, nil
}

func (r *MessageRepository) ClearSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bySession, sessionID)
	delete(r.lastAt, sessionID)
	return nil
}
