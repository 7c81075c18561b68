package application

import (
	"log"
	"mime"
	"path"
	"path/filepath"

	"gemini-chat/internal/domain"
)

// roleForModel maps the stored role to the model protocol's vocabulary.
// Gemini 用 "model" 表示 assistant
func roleForModel(r domain.Role) string {
	if r == domain.RoleAssistant {
		return "model"
	}
	return "user"
}

// BuildHistory turns a session's ordered messages into the context the
// model call expects. When a message references an image that is still
// present in the managed store, its bytes are attached as an extra part;
// a missing file degrades that turn to text-only instead of failing the
// whole request.
func BuildHistory(messages []*domain.Message, images domain.ImageStore) []domain.PromptTurn {
	history := make([]domain.PromptTurn, 0, len(messages))
	for _, msg := range messages {
		parts := []domain.Part{domain.TextPart{Text: msg.Content}}
		if msg.ImageURL != "" {
			filename := path.Base(msg.ImageURL)
			data, err := images.Resolve(filename)
			if err != nil {
				log.Printf("history: skipping image %s: %v", filename, err)
			} else {
				parts = append(parts, domain.ImagePart{
					MIME: mimeForFilename(filename),
					Data: data,
				})
			}
		}
		history = append(history, domain.PromptTurn{
			Role:  roleForModel(msg.Role),
			Parts: parts,
		})
	}
	return history
}

func mimeForFilename(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "image/png"
}
