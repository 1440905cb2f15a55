package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Equipment      *handlers.EquipmentHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/count", cfg.Tickets.Counts)
	tickets.Get("/pending", auth.RequireAdmin(), cfg.Tickets.ListPending)
	tickets.Get("/unit/:unitId", cfg.Tickets.ListByUnit)
	tickets.Patch("/:id/status", cfg.Tickets.SetStatus)
	tickets.Patch("/:id", cfg.Tickets.Update)

	equipments := app.Group("/equipments", cfg.AuthMiddleware.Handle)
	equipments.Get("/stats", cfg.Equipment.Stats)
	equipments.Get("/", cfg.Equipment.List)
	equipments.Post("/", auth.RequireAdmin(), cfg.Equipment.Create)
	equipments.Put("/:id", auth.RequireAdmin(), cfg.Equipment.Update)
	equipments.Delete("/:id", auth.RequireAdmin(), cfg.Equipment.Delete)
}
