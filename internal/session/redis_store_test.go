package session

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t, time.Minute)
	ctx := context.Background()

	sess := Session{UserID: "u-1", Email: "a@x.com", Mobile: "111"}
	token, err := store.Create(ctx, sess)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatalf("expected opaque token")
	}

	got, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sess {
		t.Fatalf("expected %+v, got %+v", sess, got)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := setupRedisStore(t, 15*time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{UserID: "u-1", Email: "a@x.com", Mobile: "111"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(15*time.Minute + time.Second)

	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after TTL, got %v", err)
	}
}

func TestRedisStoreDestroy(t *testing.T) {
	store, _ := setupRedisStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{UserID: "u-1", Email: "a@x.com", Mobile: "111"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after destroy, got %v", err)
	}

	// Destroying an already-removed token is not an error.
	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy missing token: %v", err)
	}
}

func TestRedisStoreGetUnknownToken(t *testing.T) {
	store, _ := setupRedisStore(t, time.Minute)

	if _, err := store.Get(context.Background(), "never-issued"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
