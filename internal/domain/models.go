package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`
}

type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CategoryID  string          `db:"category_id" json:"category_id"`
	// CategoryName is populated on reads via join; not a column of products.
	CategoryName  string `db:"category_name" json:"category_name,omitempty"`
	StockQuantity int    `db:"stock_quantity" json:"stock_quantity"`
	ImageURL      string `db:"image_url" json:"image_url,omitempty"`
	CreatedAt     string `db:"created_at" json:"created_date"`
}

type Order struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Status    string          `db:"status" json:"status"`
	Total     decimal.Decimal `db:"total" json:"total"`
	CreatedAt string          `db:"created_at" json:"created_at"`
	Items     []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	OrderID   string          `db:"order_id" json:"-"`
	ProductID string          `db:"product_id" json:"product_id"`
	Qty       int             `db:"qty" json:"qty"`
	Price     decimal.Decimal `db:"price" json:"price"`
}

// Order statuses.
const (
	OrderPlaced   = "PLACED"
	OrderShipped  = "SHIPPED"
	OrderCanceled = "CANCELED"
)
