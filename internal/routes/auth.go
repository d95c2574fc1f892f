package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenant-gate/tenant_gate/internal/auth"
)

// RegisterAuthRoutes wires the registration/login/session endpoints. The
// dashboard data endpoint sits behind the session loader; everything else is
// public.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, sessionLoader fiber.Handler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/dashboard-data", sessionLoader, h.DashboardData)
	r.Get("/logout", h.Logout)
}
