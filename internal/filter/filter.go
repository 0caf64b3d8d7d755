// Package filter narrows product collections using the optional query
// criteria (category, search, price bounds, stock state). Criteria are
// independent predicates combined by conjunction; applying them is a
// pure function that preserves the input order.
package filter

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Criteria keys as they arrive from the query string.
const (
	KeyCategory = "category"
	KeySearch   = "search"
	KeyMinPrice = "min_price"
	KeyMaxPrice = "max_price"
	KeyInStock  = "in_stock"
)

type Criteria struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// InStock is tri-state: nil means no stock filter, true means
	// stock_quantity > 0, false means stock_quantity == 0.
	InStock *bool
}

// ParseCriteria reads the flat query mapping. Missing keys apply no
// constraint. Price bounds that fail to parse as a non-negative decimal
// are dropped, and in_stock values other than "true"/"false" are
// dropped; malformed criteria never produce an error.
func ParseCriteria(params map[string]string) Criteria {
	c := Criteria{
		Category: strings.TrimSpace(params[KeyCategory]),
		Search:   strings.TrimSpace(params[KeySearch]),
	}
	c.MinPrice = parseBound(params[KeyMinPrice])
	c.MaxPrice = parseBound(params[KeyMaxPrice])
	switch params[KeyInStock] {
	case "true":
		t := true
		c.InStock = &t
	case "false":
		f := false
		c.InStock = &f
	}
	return c
}

func parseBound(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

type predicate func(domain.Product) bool

// predicates expands the set criteria into their predicate list.
func (c Criteria) predicates() []predicate {
	var ps []predicate
	if c.Category != "" {
		cat := c.Category
		ps = append(ps, func(p domain.Product) bool { return p.CategoryID == cat })
	}
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		ps = append(ps, func(p domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.CategoryName), q)
		})
	}
	if c.MinPrice != nil {
		min := *c.MinPrice
		ps = append(ps, func(p domain.Product) bool { return p.Price.GreaterThanOrEqual(min) })
	}
	if c.MaxPrice != nil {
		max := *c.MaxPrice
		ps = append(ps, func(p domain.Product) bool { return p.Price.LessThanOrEqual(max) })
	}
	if c.InStock != nil {
		want := *c.InStock
		ps = append(ps, func(p domain.Product) bool { return (p.StockQuantity > 0) == want })
	}
	return ps
}

// Apply returns the products matching every set criterion, in input
// order. The input slice is not modified.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	ps := c.predicates()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, ps) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, ps []predicate) bool {
	for _, pred := range ps {
		if !pred(p) {
			return false
		}
	}
	return true
}
