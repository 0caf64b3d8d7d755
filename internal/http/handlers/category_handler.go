package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(actorFrom(c))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(cats)
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) Retrieve(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	cat, err := h.Catalog.GetCategory(actorFrom(c), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(cat)
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	cat, err := h.Catalog.CreateCategory(actorFrom(c), in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	cat, err := h.Catalog.UpdateCategory(actorFrom(c), id, in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": id})
	return c.JSON(cat)
}

// DELETE /api/v1/categories/:id cascades to the category's products.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Catalog.DeleteCategory(actorFrom(c), id); err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
