package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user if present
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// actorFrom builds the request's Actor from the session user attached
// by middleware. Services only ever see this explicit value.
func actorFrom(c *fiber.Ctx) domain.Actor {
	if u, ok := c.Locals("user").(*domain.User); ok {
		return domain.ActorFor(u)
	}
	return domain.Anonymous
}
