package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *UserHandler) {
	users := app.Group("/api/users")
	users.Post("/", h.Register)
	users.Post("/auth", h.Login)
	users.Post("/logout", h.Logout)
	users.Get("/profile", h.Protect, h.GetProfile)
	users.Put("/profile", h.Protect, h.UpdateProfile)

	// catch-all for unknown routes
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("not found - %s", c.OriginalURL()))
	})
}
