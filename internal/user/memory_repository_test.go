package user

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepositoryUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, User{ID: "1", Email: "a@x.com", Mobile: "111"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Create(ctx, User{ID: "2", Email: "a@x.com", Mobile: "222"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate email: expected ErrDuplicate, got %v", err)
	}
	if err := repo.Create(ctx, User{ID: "3", Email: "b@x.com", Mobile: "111"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate mobile: expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryRepositoryFindByEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, User{ID: "1", Email: "a@x.com", Mobile: "111"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != "1" {
		t.Fatalf("expected user 1, got %q", found.ID)
	}

	if _, err := repo.FindByEmail(ctx, "missing@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
