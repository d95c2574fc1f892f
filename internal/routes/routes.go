package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tenant-gate/tenant_gate/internal/auth"
	"github.com/tenant-gate/tenant_gate/internal/config"
	"github.com/tenant-gate/tenant_gate/internal/middleware"
	"github.com/tenant-gate/tenant_gate/internal/session"
	"github.com/tenant-gate/tenant_gate/internal/user"
)

const publicDir = "./public"

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Outside of
// development both stores are mandatory; in development missing stores fall
// back to in-memory implementations.
func Setup(app *fiber.App, d Deps) error {
	if !config.IsDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{AllowOrigins: "*"}))
	if d.Logger != nil {
		app.Use(middleware.Audit(d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Stores
	var users user.Repository
	if d.DB != nil {
		users = user.NewPostgresRepository(d.DB)
	} else {
		users = user.NewMemoryRepository()
	}
	var sessions session.Store
	if d.Cache != nil {
		sessions = session.NewRedisStore(d.Cache, d.Cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(d.Cfg.SessionTTL)
	}

	// Service and handlers
	svc := auth.NewService(d.Cfg, users, sessions)
	handler := auth.NewHandler(d.Cfg, svc)
	sessionLoader := middleware.SessionLoader(d.Cfg, sessions)

	RegisterAuthRoutes(app, handler, sessionLoader)

	// Static pages: the root serves the login page, everything else comes
	// straight from the public directory.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(publicDir + "/login.html")
	})
	app.Static("/", publicDir)

	return nil
}
