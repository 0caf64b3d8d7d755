package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, user_id, status, total, created_at`

// ListByUser returns the user's orders in creation order.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE user_id = ?
	  ORDER BY created_at, id
	`, userID)
	return out, err
}

// ListAll is the admin view over every order.
func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `SELECT `+orderCols+` FROM orders ORDER BY created_at, id`)
	return out, err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	items := []domain.OrderItem{}
	if err := r.db.Select(&items, `
	  SELECT order_id, product_id, qty, price
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY product_id
	`, id); err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

// Create inserts the order header and its line items in one
// transaction.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, user_id, status, total)
	  VALUES(?, ?, ?, ?)
	`, o.ID, o.UserID, o.Status, o.Total); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, qty, price)
		  VALUES(?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Qty, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
