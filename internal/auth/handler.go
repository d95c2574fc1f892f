package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tenant-gate/tenant_gate/internal/config"
	"github.com/tenant-gate/tenant_gate/internal/middleware"
	"github.com/tenant-gate/tenant_gate/internal/session"
	"github.com/tenant-gate/tenant_gate/internal/user"
)

const (
	loginPage     = "/login.html"
	dashboardPage = "/dashboard.html"
)

// Handler exposes the register/login/dashboard-data/logout endpoints. Bodies
// may arrive as JSON or as form-encoded posts from the static pages.
type Handler struct {
	cfg config.Config
	svc *Service
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(cfg config.Config, svc *Service) *Handler {
	return &Handler{cfg: cfg, svc: svc}
}

type registerRequest struct {
	Email    string `json:"email" form:"email"`
	Mobile   string `json:"mobile" form:"mobile"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register creates an account and sends the client back to the login page.
// No session is issued here.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	_, err := h.svc.Register(c.UserContext(), Registration{Email: req.Email, Mobile: req.Mobile, Password: req.Password})
	switch {
	case err == nil:
		return c.Redirect(loginPage, http.StatusFound)
	case errors.Is(err, ErrMissingFields):
		return fiber.NewError(http.StatusBadRequest, "all fields required")
	case errors.Is(err, user.ErrDuplicate):
		return fiber.NewError(http.StatusConflict, "user already exists")
	default:
		return fiber.NewError(http.StatusInternalServerError, "database error during registration")
	}
}

// Login verifies credentials, sets the session cookie and redirects to the
// dashboard. The cookie is only written after the session has been persisted.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	token, _, err := h.svc.Login(c.UserContext(), Credentials{Email: req.Email, Password: req.Password})
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingFields):
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, "invalid email or password")
	default:
		return fiber.NewError(http.StatusInternalServerError, "server error during login")
	}

	h.setSessionCookie(c, token)
	return c.Redirect(dashboardPage, http.StatusFound)
}

// DashboardData returns the profile snapshot captured at login. It reads the
// session placed in Locals by middleware.SessionLoader and never touches the
// user store.
func (h *Handler) DashboardData(c *fiber.Ctx) error {
	sess, ok := c.Locals(middleware.SessionKey).(session.Session)
	if !ok {
		return middleware.NotLoggedIn(c)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"email":  sess.Email,
		"mobile": sess.Mobile,
	})
}

// Logout destroys the server-side session, expires the cookie and redirects
// to the login page. Calling it without an active session still redirects.
func (h *Handler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cfg.SessionCookieName)
	if err := h.svc.Logout(c.UserContext(), token); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "session error during logout")
	}

	h.clearSessionCookie(c)
	return c.Redirect(loginPage, http.StatusFound)
}

func (h *Handler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.SessionTTL),
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
