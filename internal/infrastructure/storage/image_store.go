package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gemini-chat/internal/domain"

	"github.com/google/uuid"
)

// ImageStore materializes uploaded and generated images under one managed
// directory. Filenames are uuid-based so concurrent saves never collide.
type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("%w: create upload directory: %v", domain.ErrStorage, err)
	}
	return &ImageStore{root: root}, nil
}

func (s *ImageStore) Save(data []byte, ext string) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.root, filename), data, 0644); err != nil {
		return "", fmt.Errorf("%w: write image: %v", domain.ErrStorage, err)
	}
	return filename, nil
}

func (s *ImageStore) Resolve(filename string) ([]byte, error) {
	// Only bare filenames are servable; anything that would escape the
	// managed directory is treated as unknown.
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return nil, fmt.Errorf("%w: image %q", domain.ErrNotFound, filename)
	}
	data, err := os.ReadFile(filepath.Join(s.root, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image %q", domain.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("%w: read image: %v", domain.ErrStorage, err)
	}
	return data, nil
}
