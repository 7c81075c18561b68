package storage

import (
	"bytes"
	"errors"
	"testing"

	"gemini-chat/internal/domain"
)

func TestSaveResolveRoundTrip(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore returned error: %v", err)
	}

	data := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	filename, err := store.Save(data, ".png")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if filename == "" {
		t.Fatalf("expected a filename")
	}

	got, err := store.Resolve(filename)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip not byte-identical")
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore returned error: %v", err)
	}

	first, err := store.Save([]byte("same"), ".png")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	second, err := store.Save([]byte("same"), ".png")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if first == second {
		t.Errorf("expected unique names, got %q twice", first)
	}
}

func TestResolveUnknownFile(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore returned error: %v", err)
	}
	if _, err := store.Resolve("missing.png"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore returned error: %v", err)
	}

	for _, name := range []string{
		"",
		"..",
		"../etc/passwd",
		"..∕secret", // lookalike separator stays a bare name but must still miss
		"sub/dir.png",
		"./config.yml",
	} {
		if _, err := store.Resolve(name); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Resolve(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}
