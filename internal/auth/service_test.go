package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tenant-gate/tenant_gate/internal/config"
	"github.com/tenant-gate/tenant_gate/internal/session"
	"github.com/tenant-gate/tenant_gate/internal/user"
)

func newTestService() (*Service, session.Store) {
	cfg := config.Config{
		BcryptCost:        bcrypt.MinCost,
		TrimContactFields: true,
		SessionTTL:        time.Minute,
	}
	sessions := session.NewMemoryStore(cfg.SessionTTL)
	return NewService(cfg, user.NewMemoryRepository(), sessions), sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, Registration{Email: "a@x.com", Mobile: "111", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if string(registered.PasswordHash) == "pw" {
		t.Fatalf("password stored in plaintext")
	}

	token, sess, err := svc.Login(ctx, Credentials{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
	if sess.UserID != registered.ID || sess.Email != "a@x.com" || sess.Mobile != "111" {
		t.Fatalf("unexpected session snapshot: %+v", sess)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []Registration{
		{Mobile: "111", Password: "pw"},
		{Email: "a@x.com", Password: "pw"},
		{Email: "a@x.com", Mobile: "111"},
		{Email: "   ", Mobile: "111", Password: "pw"},
	}
	for _, reg := range cases {
		if _, err := svc.Register(ctx, reg); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", reg, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, Registration{Email: "a@x.com", Mobile: "111", Password: "pw"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, Registration{Email: "a@x.com", Mobile: "222", Password: "pw"})
	if !errors.Is(err, user.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestRegisterTrimsContactFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, Registration{Email: "  a@x.com ", Mobile: " 111 ", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Email != "a@x.com" || registered.Mobile != "111" {
		t.Fatalf("expected trimmed fields, got %q %q", registered.Email, registered.Mobile)
	}

	if _, _, err := svc.Login(ctx, Credentials{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("login with trimmed email: %v", err)
	}
}

func TestLoginDoesNotRevealFailingField(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, Registration{Email: "a@x.com", Mobile: "111", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPass := svc.Login(ctx, Credentials{Email: "a@x.com", Password: "nope"})
	_, _, unknownEmail := svc.Login(ctx, Credentials{Email: "b@x.com", Password: "pw"})

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Login(ctx, Credentials{Email: "a@x.com"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := svc.Login(ctx, Credentials{Password: "pw"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	svc, sessions := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, Registration{Email: "a@x.com", Mobile: "111", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := svc.Login(ctx, Credentials{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := sessions.Get(ctx, token); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected session to be gone, got %v", err)
	}

	// Idempotent: repeated and tokenless logouts still succeed.
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if err := svc.Logout(ctx, ""); err != nil {
		t.Fatalf("logout without token: %v", err)
	}
}
