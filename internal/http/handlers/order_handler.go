package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /api/v1/orders lists the actor's own orders (all orders for admins).
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.ListOrders(actorFrom(c))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(orders)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Retrieve(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	o, err := h.Orders.GetOrder(actorFrom(c), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(o)
}

// POST /api/v1/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	o, err := h.Orders.PlaceOrder(actorFrom(c), in)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total.String()})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	o, err := h.Orders.UpdateOrderStatus(actorFrom(c), id, in.Status)
	if err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "order.update", map[string]any{"order_id": id, "status": in.Status})
	return c.JSON(o)
}

// DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Orders.DeleteOrder(actorFrom(c), id); err != nil {
		return apiError(c, err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
