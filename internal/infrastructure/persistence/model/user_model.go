package model

import (
	"time"

	"gemini-chat/internal/domain"
)

type UserModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    string    `gorm:"uniqueIndex;size:36;not null;column:user_id"`
	Username  string    `gorm:"uniqueIndex;size:255;not null;column:username"`
	Password  string    `gorm:"size:255;not null;column:password"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToDomain() *domain.User {
	return &domain.User{
		ID:        m.UserID,
		Username:  m.Username,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
	}
}
