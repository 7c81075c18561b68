package memory

import (
	"context"
	"errors"
	"testing"

	"gemini-chat/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func TestUserCreateAndLookup(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Errorf("expected generated id")
	}
	if created.Password == "s3cret" {
		t.Errorf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("lookup by username returned a different user")
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("lookup by id returned a different user")
	}
}

func TestUserDuplicateUsernameRejected(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "bob", "pw"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, "bob", "pw2"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate username, got %v", err)
	}
}

func TestUserUnknownLookup(t *testing.T) {
	repo := NewUserRepository()
	if _, err := repo.GetByUsername(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
