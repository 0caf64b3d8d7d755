package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/filter"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// criteriaFrom collects the supported filter keys into the flat map
// the filter engine parses. Absent keys stay absent.
func criteriaFrom(c *fiber.Ctx) filter.Criteria {
	return filter.ParseCriteria(map[string]string{
		filter.KeyCategory: c.Query(filter.KeyCategory),
		filter.KeySearch:   c.Query(filter.KeySearch),
		filter.KeyMinPrice: c.Query(filter.KeyMinPrice),
		filter.KeyMaxPrice: c.Query(filter.KeyMaxPrice),
		filter.KeyInStock:  c.Query(filter.KeyInStock),
	})
}

// criteriaFromCategory narrows to a single category only.
func criteriaFromCategory(catID string) filter.Criteria {
	return filter.ParseCriteria(map[string]string{filter.KeyCategory: catID})
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts(actorFrom(c), criteriaFrom(c))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Retrieve(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	p, err := h.Catalog.GetProduct(actorFrom(c), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(p)
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	p, err := h.Catalog.CreateProduct(actorFrom(c), in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	p, err := h.Catalog.UpdateProduct(actorFrom(c), id, in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Catalog.DeleteProduct(actorFrom(c), id); err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
