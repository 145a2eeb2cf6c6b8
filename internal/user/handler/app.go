package handler

import (
	"github.com/codeOfTheFuture/mern-stack-authentication/config"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// NewApp builds the fiber application with the error handler installed and
// all user routes registered.
func NewApp(cfg *config.Config, h *UserHandler, log logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorHandler(cfg, log),
	})

	RegisterRoutes(app, h)

	return app
}
