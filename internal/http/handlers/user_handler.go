package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type UserHandler struct {
	Accounts *services.AccountService
}

// GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Accounts.ListUsers(actorFrom(c))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(users)
}

// GET /api/v1/users/:id
func (h *UserHandler) Retrieve(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	u, err := h.Accounts.GetUser(actorFrom(c), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(u)
}

// POST /api/v1/users handles public registration.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	u, err := h.Accounts.Register(actorFrom(c), in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	u, err := h.Accounts.UpdateUser(actorFrom(c), id, in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "user.update", map[string]any{"user_id": id})
	return c.JSON(u)
}

// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Accounts.DeleteUser(actorFrom(c), id); err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "user.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
