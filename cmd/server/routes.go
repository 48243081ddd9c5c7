package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/questionbase/questionbase/api/internal/handler"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	// Operational routes
	deps.Health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API documentation
	deps.Docs.RegisterRoutes(app)

	// Question resource
	deps.QuestionHandler.RegisterRoutes(app)

	// Everything else
	app.Use(handler.NotFound)
}
