package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gemini-chat/internal/domain"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// MessageCache is the redis-backed message store: one JSON value per
// message plus a per-session sorted set scored by creation time. No TTLs;
// history lives until an explicit session clear.
type MessageCache struct {
	client *redis.Client
}

func NewMessageCache(client *redis.Client) (*MessageCache, error) {
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &MessageCache{client: client}, nil
}

func (r *MessageCache) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	stored := *msg
	stored.ID = uuid.NewString()
	if stored.Type == "" {
		stored.Type = domain.TypeText
	}
	stored.CreatedAt = time.Now()

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.messageKey(stored.ID), data, 0)
	pipe.ZAdd(ctx, r.sessionMessagesKey(stored.SessionID), &redis.Z{
		Score:  float64(stored.CreatedAt.UnixMicro()),
		Member: stored.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: save message: %v", domain.ErrStorage, err)
	}
	return &stored, nil
}

func (r *MessageCache) ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	ssMsgsKey := r.sessionMessagesKey(sessionID)
	msgIDs, err := r.client.ZRange(ctx, ssMsgsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: list session messages: %v", domain.ErrStorage, err)
	}
	messages := make([]*domain.Message, 0, len(msgIDs))
	if len(msgIDs) == 0 {
		return messages, nil
	}

	keys := make([]string, len(msgIDs))
	for i, id := range msgIDs {
		keys[i] = r.messageKey(id)
	}
	results, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: mget messages: %v", domain.ErrStorage, err)
	}
	for _, result := range results {
		if result == nil {
			continue
		}
		var msg domain.Message
		if err := json.Unmarshal([]byte(result.(string)), &msg); err != nil {
			continue
		}
		messages = append(messages, &msg)
	}
	return messages, nil
}

func (r *MessageCache) ClearSession(ctx context.Context, sessionID string) error {
	ssMsgsKey := r.sessionMessagesKey(sessionID)
	msgIDs, err := r.client.ZRange(ctx, ssMsgsKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("%w: clear session: %v", domain.ErrStorage, err)
	}

	pipe := r.client.Pipeline()
	for _, id := range msgIDs {
		pipe.Del(ctx, r.messageKey(id))
	}
	pipe.Del(ctx, ssMsgsKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: clear session: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *MessageCache) Close() error {
	return r.client.Close()
}

// Key generation helpers

func (r *MessageCache) messageKey(messageID string) string {
	return fmt.Sprintf("message:%s", messageID)
}

func (r *MessageCache) sessionMessagesKey(sessionID string) string {
	return fmt.Sprintf("session_messages:%s", sessionID)
}
