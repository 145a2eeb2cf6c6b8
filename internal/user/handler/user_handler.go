package handler

import (
	"github.com/codeOfTheFuture/mern-stack-authentication/config"
	usererror "github.com/codeOfTheFuture/mern-stack-authentication/internal/errors"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/domain"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/dto"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/service"
	"github.com/gofiber/fiber/v2"
)

// userLocalsKey is where Protect stores the authenticated, password-free user.
const userLocalsKey = "authUser"

type UserHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	cfg         *config.Config
}

func NewUserHandler(userService *service.UserService, tokens service.TokenGenerator, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		tokens:      tokens,
		cfg:         cfg,
	}
}

// Register creates the account and signs the caller in: the session cookie is
// attached to the 201 response.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid input")
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email and password are required")
	}

	user, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(dto.NewCredentialsOutput(user))
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid input")
	}

	user, err := h.userService.Authenticate(c.UserContext(), input)
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(dto.NewCredentialsOutput(user))
}

// Logout overwrites the session cookie with an expired empty value. No token
// check happens here; an unauthenticated logout is harmless.
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user logged out",
	})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := c.Locals(userLocalsKey).(*domain.User)
	if !ok {
		return usererror.ErrUserNotFound
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := c.Locals(userLocalsKey).(*domain.User)
	if !ok {
		return usererror.ErrUserNotFound
	}

	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid input")
	}

	updated, err := h.userService.UpdateProfile(c.UserContext(), user.ID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(updated))
}
