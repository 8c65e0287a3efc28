package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-gateway/internal/api/http/handlers"
	"github.com/spec-kit/crm-gateway/internal/auth"
	"github.com/spec-kit/crm-gateway/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Interactions   *handlers.InteractionsHandler
	Entities       *handlers.EntitiesHandler
	Statuses       *handlers.StatusesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	protectedAuth := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())
	protectedAuth.Post("/password/change", cfg.Users.ChangePassword)

	api := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())

	api.Post("/interactions/preview", cfg.Interactions.Preview)
	api.Post("/interactions", cfg.Interactions.Submit)
	api.Get("/interactions", cfg.Interactions.List)
	api.Get("/interactions/:id", cfg.Interactions.Get)
	api.Patch("/interactions/:id", cfg.Interactions.Update)

	api.Get("/entities/suggestions", cfg.Entities.Suggestions)
	api.Get("/entities", cfg.Entities.Search)
	api.Get("/entities/:id/contacts", cfg.Entities.ListContacts)

	api.Get("/statuses", cfg.Statuses.List)
	api.Put("/statuses", auth.RequireRole(domain.RoleManager, domain.RoleAdmin), cfg.Statuses.Upsert)
}
