package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

// PageHandler renders the HTML pages mirroring the API surface.
type PageHandler struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{})
}

// GET /products-grid
func (h *PageHandler) ProductGrid(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts(actorFrom(c), criteriaFrom(c))
	if err != nil {
		applog.Error(c, "page.products.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "product_grid", fiber.Map{"Products": products, "Count": len(products)})
}

// GET /products/:id
func (h *PageHandler) ProductDetail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(actorFrom(c), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product_detail", fiber.Map{"P": p})
}

// GET /categories (login required by the route guard)
func (h *PageHandler) CategoryList(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(actorFrom(c))
	if err != nil {
		applog.Error(c, "page.categories.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "category_list", fiber.Map{"Categories": cats})
}

// GET /categories/:id
func (h *PageHandler) CategoryDetail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	actor := actorFrom(c)
	cat, err := h.Catalog.GetCategory(actor, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	products, err := h.Catalog.ListProducts(actor, criteriaFromCategory(id))
	if err != nil {
		applog.Error(c, "page.category.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load category"})
	}
	return render(c, "category_detail", fiber.Map{"Category": cat, "Products": products})
}

// GET /orders (login required by the route guard)
func (h *PageHandler) OrderList(c *fiber.Ctx) error {
	orders, err := h.Orders.ListOrders(actorFrom(c))
	if err != nil {
		applog.Error(c, "page.orders.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "order_list", fiber.Map{"Orders": orders})
}
