package domain

import "context"

// MessageRepository 定义消息数据访问接口
// 不关心具体实现是内存，redis，还是db
type MessageRepository interface {
	// Create assigns the id and creation timestamp, persists the message
	// and returns the stored record. Type defaults to text when unset.
	Create(ctx context.Context, msg *Message) (*Message, error)
	// ListBySession returns all messages of the session ordered by
	// creation time ascending. Unknown sessions yield an empty slice.
	ListBySession(ctx context.Context, sessionID string) ([]*Message, error)
	// ClearSession removes every message of the session. Idempotent.
	ClearSession(ctx context.Context, sessionID string) error
}

type UserRepository interface {
	Create(ctx context.Context, username, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// ImageStore persists binary image data under a managed directory.
type ImageStore interface {
	// Save writes the bytes under a fresh unique filename and returns it.
	Save(data []byte, ext string) (string, error)
	// Resolve returns the stored bytes, or ErrNotFound. Only bare
	// filenames inside the managed directory are accepted.
	Resolve(filename string) ([]byte, error)
}
