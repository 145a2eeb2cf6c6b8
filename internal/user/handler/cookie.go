package handler

import (
	"time"

	"github.com/codeOfTheFuture/mern-stack-authentication/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// setSessionCookie attaches the signed token as an HTTP-only cookie. Secure
// is on everywhere except development so local HTTP still works.
func (h *UserHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: fiber.CookieSameSiteStrictMode,
		MaxAge:   int(h.tokens.Expiry().Seconds()),
	})
}

// clearSessionCookie overwrites the cookie with an empty value that expired
// in the past, so the client discards it immediately.
func (h *UserHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
