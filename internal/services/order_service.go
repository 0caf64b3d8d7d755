package services

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/authz"
	"storefront/internal/domain"
	"storefront/internal/repos"
)

// OrderService serves orders. Reads are scoped to the owning user;
// an order belonging to someone else reads as not found so the id's
// existence is never confirmed to strangers. Admins see everything.
type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo) *OrderService {
	return &OrderService{Orders: orders, Prods: prods}
}

type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type OrderInput struct {
	Items []OrderItemInput `json:"items"`
}

func (s *OrderService) ListOrders(actor domain.Actor) ([]domain.Order, error) {
	if err := authz.Authorize(authz.Orders, authz.List, actor); err != nil {
		return nil, err
	}
	if actor.Admin {
		return s.Orders.ListAll()
	}
	return s.Orders.ListByUser(actor.ID)
}

func (s *OrderService) GetOrder(actor domain.Actor, id string) (domain.Order, error) {
	if err := authz.Authorize(authz.Orders, authz.Retrieve, actor); err != nil {
		return domain.Order{}, err
	}
	o, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if !authz.OwnsOrder(actor, o) {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

// PlaceOrder creates an order for the actor from the given line items.
// The total is computed from current product prices.
func (s *OrderService) PlaceOrder(actor domain.Actor, in OrderInput) (domain.Order, error) {
	if err := authz.Authorize(authz.Orders, authz.Create, actor); err != nil {
		return domain.Order{}, err
	}
	if len(in.Items) == 0 {
		return domain.Order{}, domain.Invalid("items", "at least one item required")
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		field := "items[" + strconv.Itoa(i) + "]"
		if it.Qty < 1 {
			return domain.Order{}, domain.Invalid(field+".qty", "must be at least 1")
		}
		p, err := s.Prods.Get(it.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, domain.Invalid(field+".product_id", "unknown product")
		}
		if err != nil {
			return domain.Order{}, err
		}
		items = append(items, domain.OrderItem{ProductID: p.ID, Qty: it.Qty, Price: p.Price})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}

	o := domain.Order{
		ID:     uuid.NewString(),
		UserID: actor.ID,
		Status: domain.OrderPlaced,
		Total:  total,
		Items:  items,
	}
	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(o.ID)
}

// UpdateOrderStatus moves an order between statuses, subject to the
// same visibility rules as reads.
func (s *OrderService) UpdateOrderStatus(actor domain.Actor, id, status string) (domain.Order, error) {
	if err := authz.Authorize(authz.Orders, authz.Update, actor); err != nil {
		return domain.Order{}, err
	}
	o, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if !authz.OwnsOrder(actor, o) {
		return domain.Order{}, domain.ErrNotFound
	}
	switch status {
	case domain.OrderPlaced, domain.OrderShipped, domain.OrderCanceled:
	default:
		return domain.Order{}, domain.Invalid("status", "must be PLACED, SHIPPED or CANCELED")
	}
	if err := s.Orders.UpdateStatus(id, status); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(id)
}

func (s *OrderService) DeleteOrder(actor domain.Actor, id string) error {
	if err := authz.Authorize(authz.Orders, authz.Delete, actor); err != nil {
		return err
	}
	o, err := s.Orders.Get(id)
	if err != nil {
		return err
	}
	if !authz.OwnsOrder(actor, o) {
		return domain.ErrNotFound
	}
	return s.Orders.Delete(id)
}
