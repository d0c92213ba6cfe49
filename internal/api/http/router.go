package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketreport/backend/internal/api/http/handlers"
	"github.com/ticketreport/backend/internal/auth"
	"github.com/ticketreport/backend/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", auth.RequireRole(domain.RoleAdmin, domain.RoleResolver), cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/assign", auth.RequireAdmin(), cfg.Tickets.AssignTicket)
	tickets.Post("/:id/messages", cfg.Tickets.AddMessage)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/resolvers", cfg.Admin.ListResolvers)
	admin.Post("/users/:id/approve", cfg.Admin.ApproveUser)
	admin.Patch("/users/:id/role", cfg.Admin.UpdateUserRole)
	admin.Post("/users/:id/reset-password", cfg.Admin.ResetPassword)
}
