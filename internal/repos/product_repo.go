package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  p.id, p.name, p.description, p.price, p.category_id,
  c.name AS category_name,
  p.stock_quantity, COALESCE(p.image_url,'') AS image_url, p.created_at`

// List returns all products joined with their category name, in
// creation (insertion) order.
func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products p
	  JOIN categories c ON c.id = p.category_id
	  ORDER BY p.created_at, p.id
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products p
	  JOIN categories c ON c.id = p.category_id
	  WHERE p.id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}

// NameTaken reports whether another product (excluding excludeID)
// already uses the name, case-insensitively.
func (r *ProductRepo) NameTaken(name, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM products
	  WHERE LOWER(name) = LOWER(?) AND id != ?
	`, name, excludeID)
	return n > 0, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, name, description, price, category_id, stock_quantity, image_url)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.Price, p.CategoryID, p.StockQuantity, p.ImageURL)
	return err
}

// Update writes the mutable columns; created_at is never touched.
func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, description = ?, price = ?, category_id = ?, stock_quantity = ?, image_url = ?
	  WHERE id = ?
	`, p.Name, p.Description, p.Price, p.CategoryID, p.StockQuantity, p.ImageURL, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
