package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"boothtrack.in/internal/config"
)

// NewServer builds the fiber app with access logging, CORS and the
// liveness probe. Routes are registered separately by Router.
func NewServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	app.Use(logger.New())

	corsCfg := cors.Config{}
	if cfg.Server.AllowOrigins != "" {
		corsCfg.AllowOrigins = cfg.Server.AllowOrigins
	}
	app.Use(cors.New(corsCfg))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API is running",
			"debug":   cfg.Debug,
		})
	})

	return app
}
