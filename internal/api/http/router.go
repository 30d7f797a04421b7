package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-service/internal/api/http/handlers"
	"github.com/spec-kit/staff-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Roster         *handlers.RosterHandler
	Messages       *handlers.MessagesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireRosterAccess())
	staff.Get("/", cfg.Roster.List)
	staff.Get("/departments", cfg.Roster.Departments)
	staff.Get("/schedule", cfg.Roster.Schedule)
	staff.Get("/schedule/week", cfg.Roster.Week)

	messages := app.Group("/messages", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	messages.Get("/", cfg.Messages.List)
	messages.Post("/", cfg.Messages.Compose)
	messages.Get("/recipients", cfg.Messages.Recipients)
	messages.Get("/stream", cfg.Messages.Stream)
	messages.Post("/:id/open", cfg.Messages.Open)
	messages.Post("/:id/reply", cfg.Messages.Reply)
}
