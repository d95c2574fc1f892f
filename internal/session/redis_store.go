package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:v1:"

// RedisStore keeps sessions in Redis with a fixed TTL. Expiry is delegated to
// Redis: once the key ages out, Get reports ErrNoSession.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed session store. Sessions live for ttl
// from creation.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Create persists the session under a fresh opaque token and returns the
// token once Redis has acknowledged the write.
func (s *RedisStore) Create(ctx context.Context, sess Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return token, nil
}

// Get fetches the session for a token. A missing or expired key yields
// ErrNoSession.
func (s *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	raw, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Destroy removes the session. Deleting a token that no longer exists is not
// an error, which keeps logout idempotent.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
