package domain

import "time"

// User 辅助用户实体，仅做身份查询，不参与会话逻辑
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}
