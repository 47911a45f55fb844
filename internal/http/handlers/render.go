package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stockroom/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// sid returns the browser's session id cookie, minting one if absent.
func sid(c *fiber.Ctx) string {
	if v := c.Cookies("sid"); v != "" {
		return v
	}
	v := uuid.NewString()
	c.Cookie(&fiber.Cookie{Name: "sid", Value: v, HTTPOnly: true, SameSite: "Lax"})
	return v
}

// backToPage redirects to the inventory page for the session's email.
func backToPage(c *fiber.Ctx, sess *services.PageSession) error {
	target := "/inventory"
	if e := sess.Email(); e != "" {
		target += "?email=" + url.QueryEscape(e)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}
