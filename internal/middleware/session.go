package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tenant-gate/tenant_gate/internal/config"
	"github.com/tenant-gate/tenant_gate/internal/session"
)

// SessionKey is the Locals key under which SessionLoader stores the resolved
// session.Session value.
const SessionKey = "session"

// SessionLoader resolves the session cookie into session data and makes it
// available to downstream handlers via Locals. Requests without an active
// session are rejected with a JSON 401 and never reach the handler.
func SessionLoader(cfg config.Config, store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cfg.SessionCookieName)
		if token == "" {
			return NotLoggedIn(c)
		}

		sess, err := store.Get(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return NotLoggedIn(c)
			}
			return fiber.NewError(http.StatusInternalServerError, "session store failure")
		}

		c.Locals(SessionKey, sess)
		return c.Next()
	}
}

// NotLoggedIn writes the JSON 401 body unauthenticated session reads receive.
func NotLoggedIn(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "not logged in"})
}
