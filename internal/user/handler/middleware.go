package handler

import (
	"errors"

	usererror "github.com/codeOfTheFuture/mern-stack-authentication/internal/errors"
	"github.com/codeOfTheFuture/mern-stack-authentication/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// Protect guards profile routes. A request either carries a verifiable
// session cookie that resolves to an existing user, or it is rejected; there
// is no retry within a request. The user stored in Locals never carries the
// password hash.
func (h *UserHandler) Protect(c *fiber.Ctx) error {
	token := c.Cookies(constant.SessionCookieName)
	if token == "" {
		return usererror.ErrNoToken
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		return usererror.ErrInvalidToken
	}

	user, err := h.userService.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, usererror.ErrUserNotFound) {
			// token is valid but the account is gone
			return usererror.ErrInvalidToken
		}
		return err
	}

	c.Locals(userLocalsKey, user.Sanitized())

	return c.Next()
}
