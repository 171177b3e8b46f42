package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte360/internal/api/http/handlers"
	"github.com/spec-kit/soporte360/internal/auth"
	"github.com/spec-kit/soporte360/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Get("/campaigns", cfg.Auth.Campaigns)
	authProtected.Get("/support-groups", cfg.Auth.SupportGroups)
	authProtected.Post("/register",
		auth.RequireRole(domain.RoleMasterAdmin, domain.RoleAdmin), cfg.Auth.Register)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", auth.RequireRole(domain.RoleUsuarioFinal), cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", auth.RequireStaff(), cfg.Tickets.Update)
	tickets.Post("/:id/assign", auth.RequireRole(domain.RoleSoporte), cfg.Tickets.Assign)

	api.Get("/metrics", cfg.AuthMiddleware.Handle, auth.RequireStaff(), cfg.Metrics.Get)

	users := api.Group("/users", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleMasterAdmin, domain.RoleAdmin))
	users.Get("", cfg.Users.List)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
}
