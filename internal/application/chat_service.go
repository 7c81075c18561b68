package application

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gemini-chat/internal/domain"
)

const (
	MaxMessageLen = 2000
	MaxPromptLen  = 1000

	// FallbackReply is persisted when the model returns empty content.
	FallbackReply = "I'm sorry, I couldn't generate a response. Please try again."
	// DefaultUploadContent is the user-turn text when an image is
	// uploaded without an accompanying message.
	DefaultUploadContent = "Please analyze this image."
)

type ChatService struct {
	messages domain.MessageRepository
	images   domain.ImageStore
	model    domain.ModelClient
}

func NewChatService(messages domain.MessageRepository, images domain.ImageStore, model domain.ModelClient) *ChatService {
	return &ChatService{
		messages: messages,
		images:   images,
		model:    model,
	}
}

// SendMessage 文本消息协议：保存用户消息 → 组装上下文 → 调用模型 → 保存助手消息
// Model failure leaves the user message persisted and no assistant message.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, text string) (*domain.Message, *domain.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, nil, err
	}
	if n := utf8.RuneCountInString(text); n == 0 || n > MaxMessageLen {
		return nil, nil, fmt.Errorf("%w: message must be 1-%d characters", domain.ErrValidation, MaxMessageLen)
	}

	userMsg, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   text,
		Type:      domain.TypeText,
	})
	if err != nil {
		return nil, nil, err
	}

	stored, err := s.messages.ListBySession(ctx, sessionID)
	if err != nil {
		return userMsg, nil, err
	}

	reply, err := s.model.Chat(ctx, BuildHistory(stored, s.images))
	if err != nil {
		return userMsg, nil, err
	}
	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
	}

	assistantMsg, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		Type:      domain.TypeText,
	})
	if err != nil {
		return userMsg, nil, err
	}
	return userMsg, assistantMsg, nil
}

// AnalyzeImage persists the uploaded image and the user turn referencing
// it, then asks the model to describe the image. The handler has already
// validated file presence, MIME type and size.
func (s *ChatService) AnalyzeImage(ctx context.Context, sessionID, prompt string, data []byte, mimeType string) (*domain.Message, *domain.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, nil, err
	}

	filename, err := s.images.Save(data, extForMIME(mimeType))
	if err != nil {
		return nil, nil, err
	}

	content := strings.TrimSpace(prompt)
	if content == "" {
		content = DefaultUploadContent
	}
	userMsg, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   content,
		ImageURL:  "/images/" + filename,
		Type:      domain.TypeImage,
	})
	if err != nil {
		return nil, nil, err
	}

	analysis, err := s.model.AnalyzeImage(ctx, data, mimeType, prompt)
	if err != nil {
		return userMsg, nil, err
	}
	if strings.TrimSpace(analysis) == "" {
		analysis = FallbackReply
	}

	assistantMsg, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   analysis,
		Type:      domain.TypeText,
	})
	if err != nil {
		return userMsg, nil, err
	}
	return userMsg, assistantMsg, nil
}

// GenerateImage records the generation request as a user turn, invokes
// the model and materializes the returned bytes under a fresh filename.
func (s *ChatService) GenerateImage(ctx context.Context, sessionID, prompt string) (*domain.Message, *domain.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, nil, err
	}
	if n := utf8.RuneCountInString(prompt); n == 0 || n > MaxPromptLen {
		return nil, nil, fmt.Errorf("%w: prompt must be 1-%d characters", domain.ErrValidation, MaxPromptLen)
	}

	userMsg, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   fmt.Sprintf("Generate an image: %s", prompt),
		Type:      domain.TypeText,
	})
	if err != nil {
		return nil, nil, err
	}

	data, mimeType, err := s.model.GenerateImage(ctx, prompt)
	if err != nil {
		return userMsg, nil, err
	}
	filename, err := s.images.Save(data, extForMIME(mimeType))
	if err != nil {
		return userMsg, nil, err
	}

	assistantMsg, err := s.messages.Create(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   fmt.Sprintf("Generated an image based on: %s", prompt),
		ImageURL:  "/images/" + filename,
		Type:      domain.TypeImageGeneration,
	})
	if err != nil {
		return userMsg, nil, err
	}
	return userMsg, assistantMsg, nil
}

func (s *ChatService) History(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	return s.messages.ListBySession(ctx, sessionID)
}

func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}
	return s.messages.ClearSession(ctx, sessionID)
}

func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionId is required", domain.ErrValidation)
	}
	return nil
}

func extForMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
