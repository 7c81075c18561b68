package application

import (
	"bytes"
	"testing"

	"gemini-chat/internal/domain"
	"gemini-chat/internal/infrastructure/storage"
)

func TestBuildHistoryRoleMapping(t *testing.T) {
	images, err := storage.NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore returned error: %v", err)
	}

	messages := []*domain.Message{
		{Role: domain.RoleUser, Content: "question"},
		{Role: domain.RoleAssistant, Content: "answer"},
	}
	history := BuildHistory(messages, images)

	if len(history) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(history))
	}
	if history[0].Role != "user" {
		t.Errorf("expected role user, got %q", history[0].Role)
	}
	if history[1].Role != "model" {
		t.Errorf("assistant must map to model, got %q", history[1].Role)
	}
	if text, ok := history[1].Parts[0].(domain.TextPart); !ok || text.Text != "answer" {
		t.Errorf("unexpected part: %+v", history[1].Parts[0])
	}
}

func TestBuildHistoryAttachesStoredImage(t *testing.T) {
	images, err := storage.NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore returned error: %v", err)
	}
	data := []byte("png-bytes")
	filename, err := images.Save(data, ".png")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	messages := []*domain.Message{
		{Role: domain.RoleUser, Content: "look", ImageURL: "/images/" + filename, Type: domain.TypeImage},
	}
	history := BuildHistory(messages, images)

	if len(history[0].Parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(history[0].Parts))
	}
	img, ok := history[0].Parts[1].(domain.ImagePart)
	if !ok {
		t.Fatalf("expected ImagePart, got %+v", history[0].Parts[1])
	}
	if !bytes.Equal(img.Data, data) {
		t.Errorf("image bytes not attached verbatim")
	}
	if img.MIME != "image/png" {
		t.Errorf("expected image/png, got %q", img.MIME)
	}
}

func TestBuildHistoryDropsMissingImageSilently(t *testing.T) {
	images, err := storage.NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore returned error: %v", err)
	}

	messages := []*domain.Message{
		{Role: domain.RoleUser, Content: "look", ImageURL: "/images/gone.png", Type: domain.TypeImage},
	}
	history := BuildHistory(messages, images)

	// The turn degrades to text-only; no error, no image part.
	if len(history) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(history))
	}
	if len(history[0].Parts) != 1 {
		t.Fatalf("expected the image part to be omitted, got %d parts", len(history[0].Parts))
	}
	if _, ok := history[0].Parts[0].(domain.TextPart); !ok {
		t.Errorf("remaining part must be text, got %+v", history[0].Parts[0])
	}
}
