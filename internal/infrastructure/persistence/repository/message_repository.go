package repository

import (
	"context"
	"fmt"

	"gemini-chat/internal/domain"
	"gemini-chat/internal/infrastructure/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository is the durable postgres-backed store, selectable via
// the storage.driver config.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	stored := *msg
	stored.ID = uuid.NewString()
	if stored.Type == "" {
		stored.Type = domain.TypeText
	}

	record := model.ToMessageModel(&stored)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("%w: create message: %v", domain.ErrStorage, err)
	}
	// autoCreateTime filled the struct on insert
	stored.CreatedAt = record.CreatedAt
	return &stored, nil
}

func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	var records []*model.MessageModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at asc").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", domain.ErrStorage, err)
	}
	messages := make([]*domain.Message, 0, len(records))
	for _, record := range records {
		messages = append(messages, record.ToDomain())
	}
	return messages, nil
}

func (r *MessageRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.MessageModel{}).Error; err != nil {
		return fmt.Errorf("%w: clear session: %v", domain.ErrStorage, err)
	}
	return nil
}
