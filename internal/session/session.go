package session

import (
	"context"
	"errors"
)

// ErrNoSession indicates the token maps to no active session, either because
// it was never issued, was destroyed by logout, or expired.
var ErrNoSession = errors.New("no active session")

// Session is the profile snapshot captured at login time. It is a copy of the
// user row as it existed then and is never refreshed from the user store.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// Store holds server-side sessions keyed by an opaque token. Create must
// durably persist the session before returning: the login handler only sets
// the cookie and redirects once Create has succeeded.
type Store interface {
	Create(ctx context.Context, sess Session) (string, error)
	Get(ctx context.Context, token string) (Session, error)
	Destroy(ctx context.Context, token string) error
}
