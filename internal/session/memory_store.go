package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore builds an in-memory session store for testing and local
// development. Expiry is checked lazily on Get.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *memoryStore) Create(_ context.Context, sess Session) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{sess: sess, expiresAt: s.now().Add(s.ttl)}
	return token, nil
}

func (s *memoryStore) Get(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrNoSession
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return Session{}, ErrNoSession
	}
	return entry.sess, nil
}

func (s *memoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
