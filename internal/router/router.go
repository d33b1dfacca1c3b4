package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oakfield-edu/gradecast/internal/config"
	"github.com/oakfield-edu/gradecast/internal/handler"
	"github.com/oakfield-edu/gradecast/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler *handler.StudentHandler
	StudentCount   func() int
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	count := deps.StudentCount
	if count == nil {
		count = func() int { return 0 }
	}

	app.Get("/", handler.Home())
	app.Get("/health", handler.HealthCheck(cfg, count))
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}
}
