package model

import (
	"time"

	"gemini-chat/internal/domain"
)

type MessageModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	MessageID string    `gorm:"uniqueIndex:idx_message_id;size:36;not null;column:message_id"`
	SessionID string    `gorm:"index:idx_session_id;size:255;not null;column:session_id"`
	Role      string    `gorm:"size:20;not null;check:role IN ('user','assistant');column:role"`
	Content   string    `gorm:"type:text;not null;column:content"`
	ImageURL  string    `gorm:"size:512;column:image_url"`
	Type      string    `gorm:"size:32;not null;column:message_type"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null;column:created_at"`
}

func (MessageModel) TableName() string {
	return "messages"
}

func (m *MessageModel) ToDomain() *domain.Message {
	return &domain.Message{
		ID:        m.MessageID,
		SessionID: m.SessionID,
		Role:      domain.Role(m.Role),
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		Type:      domain.MessageType(m.Type),
		CreatedAt: m.CreatedAt,
	}
}

func ToMessageModel(d *domain.Message) *MessageModel {
	return &MessageModel{
		MessageID: d.ID,
		SessionID: d.SessionID,
		Role:      d.Role.String(),
		Content:   d.Content,
		ImageURL:  d.ImageURL,
		Type:      d.Type.String(),
	}
}
