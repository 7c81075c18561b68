package adapter

import (
	"context"
	"errors"
	"fmt"

	"gemini-chat/internal/domain"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements domain.ModelClient on top of the hosted
// generative language API. Every failure is surfaced as
// domain.ErrExternalService; there are no retries here.
type GeminiClient struct {
	client      *genai.Client
	chatModel   string
	visionModel string
	imageModel  string
}

func NewGeminiClient(ctx context.Context, apiKey, chatModel, visionModel, imageModel string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiClient{
		client:      client,
		chatModel:   chatModel,
		visionModel: visionModel,
		imageModel:  imageModel,
	}, nil
}

// Chat sends the ordered conversation to the model. The final turn is the
// live message; everything before it becomes chat history.
func (g *GeminiClient) Chat(ctx context.Context, history []domain.PromptTurn) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("%w: empty history", domain.ErrValidation)
	}
	model := g.client.GenerativeModel(g.chatModel)
	cs := model.StartChat()

	prior := history[:len(history)-1]
	contents := make([]*genai.Content, 0, len(prior))
	for _, turn := range prior {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: toGenaiParts(turn.Parts),
		})
	}
	cs.History = contents

	resp, err := cs.SendMessage(ctx, toGenaiParts(history[len(history)-1].Parts)...)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", domain.ErrExternalService, err)
	}
	return firstText(resp), nil
}

func (g *GeminiClient) AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.visionModel)

	parts := make([]genai.Part, 0, 2)
	if prompt != "" {
		parts = append(parts, genai.Text(prompt))
	}
	parts = append(parts, genai.Blob{MIMEType: mimeType, Data: data})

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: analyze image: %v", domain.ErrExternalService, err)
	}
	return firstText(resp), nil
}

func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	model := g.client.GenerativeModel(g.imageModel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, "", fmt.Errorf("%w: generate image: %v", domain.ErrExternalService, err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok {
				return blob.Data, blob.MIMEType, nil
			}
		}
	}
	// The image model can answer with a text refusal instead of a blob.
	return nil, "", fmt.Errorf("%w: model returned no image data", domain.ErrExternalService)
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func toGenaiParts(parts []domain.Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		switch p := p.(type) {
		case domain.TextPart:
			out = append(out, genai.Text(p.Text))
		case domain.ImagePart:
			out = append(out, genai.Blob{MIMEType: p.MIME, Data: p.Data})
		}
	}
	return out
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return string(text)
			}
		}
	}
	return ""
}
