package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenant-gate/tenant_gate/internal/config"
	"github.com/tenant-gate/tenant_gate/internal/session"
	"github.com/tenant-gate/tenant_gate/internal/user"
)

var (
	// ErrMissingFields indicates a required input was absent or empty.
	ErrMissingFields = errors.New("all fields are required")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service manages the account and session lifecycle: registration, credential
// verification, session issuance and teardown.
type Service struct {
	cfg      config.Config
	users    user.Repository
	sessions session.Store
}

// NewService creates an auth service backed by the given stores.
func NewService(cfg config.Config, users user.Repository, sessions session.Store) *Service {
	return &Service{cfg: cfg, users: users, sessions: sessions}
}

// Registration captures the inputs of a register request.
type Registration struct {
	Email    string
	Mobile   string
	Password string
}

// Credentials captures the inputs of a login request.
type Credentials struct {
	Email    string
	Password string
}

// Register hashes the password, assigns a fresh user ID and inserts the row.
// A duplicate email or mobile surfaces as user.ErrDuplicate. Registration
// never creates a session.
func (s *Service) Register(ctx context.Context, reg Registration) (user.User, error) {
	email := s.normalize(reg.Email)
	mobile := s.normalize(reg.Mobile)
	if email == "" || mobile == "" || reg.Password == "" {
		return user.User{}, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cfg.BcryptCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := user.User{
		ID:           uuid.New().String(),
		Email:        email,
		Mobile:       mobile,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return user.User{}, err
	}

	return u, nil
}

// Login verifies the credentials and, on success, persists a new session
// holding the profile snapshot taken from the user row. The token is only
// returned once the session store has confirmed the write, so a client
// following the redirect always finds its session.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials;
// store failures are reported as-is and map to a server error, never to an
// authentication failure.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, session.Session, error) {
	email := s.normalize(creds.Email)
	if email == "" || creds.Password == "" {
		return "", session.Session{}, ErrMissingFields
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", session.Session{}, ErrInvalidCredentials
		}
		return "", session.Session{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(creds.Password)); err != nil {
		return "", session.Session{}, ErrInvalidCredentials
	}

	sess := session.Session{UserID: u.ID, Email: u.Email, Mobile: u.Mobile}
	token, err := s.sessions.Create(ctx, sess)
	if err != nil {
		return "", session.Session{}, fmt.Errorf("create session: %w", err)
	}

	return token, sess, nil
}

// Logout destroys the session for the token. An empty or unknown token is a
// no-op success so the operation stays idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

func (s *Service) normalize(v string) string {
	if s.cfg.TrimContactFields {
		return strings.TrimSpace(v)
	}
	return v
}
