package domain

import "context"

// Part is one element of a prompt turn's content.
type Part interface {
	isPart()
}

type TextPart struct {
	Text string
}

// ImagePart carries raw image bytes; the model adapter handles wire encoding.
type ImagePart struct {
	MIME string
	Data []byte
}

func (TextPart) isPart()  {}
func (ImagePart) isPart() {}

// PromptTurn is one entry of the ordered context sent to the model.
// Role uses the external protocol's vocabulary: "user" or "model".
type PromptTurn struct {
	Role  string
	Parts []Part
}

// ModelClient is the hosted generative model boundary. Calls are blocking,
// cancellable via ctx and fail with ErrExternalService. No retries.
type ModelClient interface {
	Chat(ctx context.Context, history []PromptTurn) (string, error)
	AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (data []byte, mimeType string, err error)
}
