package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/faculty-workload/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	Pages     *handlers.PagesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/dashboard")
	api.Get("/overview", cfg.Dashboard.Overview)
	api.Get("/heatmap", cfg.Dashboard.Heatmap)
	api.Get("/chart", cfg.Dashboard.Chart)
	api.Get("/table", cfg.Dashboard.Table)
	api.Get("/insights", cfg.Dashboard.Insights)
	api.Get("/export", cfg.Dashboard.Export)
	api.Post("/refresh", cfg.Dashboard.Refresh)

	app.Get("/", cfg.Pages.Dashboard)
	app.Post("/refresh", cfg.Pages.Refresh)
}
