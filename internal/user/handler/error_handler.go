package handler

import (
	"errors"
	"runtime/debug"

	"github.com/codeOfTheFuture/mern-stack-authentication/config"
	usererror "github.com/codeOfTheFuture/mern-stack-authentication/internal/errors"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// errorBody is the JSON error shape. Stack is only populated in development.
type errorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// NewErrorHandler maps errors surfaced by handlers onto the HTTP taxonomy:
// conflict/validation 400, authentication 401, missing resources 404,
// everything else 500. Every failure is terminal for its request.
func NewErrorHandler(cfg *config.Config, log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.Is(err, usererror.ErrEmailAlreadyInUse):
			status = fiber.StatusBadRequest
		case errors.Is(err, usererror.ErrInvalidCredentials),
			errors.Is(err, usererror.ErrNoToken),
			errors.Is(err, usererror.ErrInvalidToken):
			status = fiber.StatusUnauthorized
		case errors.Is(err, usererror.ErrUserNotFound):
			status = fiber.StatusNotFound
		}

		if status == fiber.StatusInternalServerError && log != nil {
			log.Error(c.UserContext(), "request failed",
				"method", c.Method(), "path", c.Path(), "error", err)
		}

		body := errorBody{Message: err.Error()}
		if cfg.IsDevelopment() {
			body.Stack = string(debug.Stack())
		}

		return c.Status(status).JSON(body)
	}
}
