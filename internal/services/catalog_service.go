package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/authz"
	"storefront/internal/domain"
	"storefront/internal/filter"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

// CatalogService serves products and categories. Every method takes
// the acting identity and runs the same shape: authorize, validate,
// then hit the store.
type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    string          `json:"category_id"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ---------- Products ----------

// ListProducts narrows the catalog with the given criteria. An empty
// result is not an error.
func (s *CatalogService) ListProducts(actor domain.Actor, c filter.Criteria) ([]domain.Product, error) {
	if err := authz.Authorize(authz.Products, authz.List, actor); err != nil {
		return nil, err
	}
	all, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, c), nil
}

func (s *CatalogService) GetProduct(actor domain.Actor, id string) (domain.Product, error) {
	if err := authz.Authorize(authz.Products, authz.Retrieve, actor); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) CreateProduct(actor domain.Actor, in ProductInput) (domain.Product, error) {
	if err := authz.Authorize(authz.Products, authz.Create, actor); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{
		ID:            uuid.NewString(),
		CategoryID:    in.CategoryID,
		StockQuantity: in.StockQuantity,
	}
	if err := s.fillProduct(&p, in, ""); err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Insert(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(p.ID)
}

func (s *CatalogService) UpdateProduct(actor domain.Actor, id string, in ProductInput) (domain.Product, error) {
	if err := authz.Authorize(authz.Products, authz.Update, actor); err != nil {
		return domain.Product{}, err
	}
	cur, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{ID: cur.ID, CategoryID: in.CategoryID, StockQuantity: in.StockQuantity}
	if p.CategoryID == "" {
		// The fallback default applies to creation only; an update
		// without a category keeps the one already assigned.
		p.CategoryID = cur.CategoryID
	}
	if err := s.fillProduct(&p, in, cur.ID); err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) DeleteProduct(actor domain.Actor, id string) error {
	if err := authz.Authorize(authz.Products, authz.Delete, actor); err != nil {
		return err
	}
	return s.Prods.Delete(id)
}

// fillProduct validates the payload into p. A missing category falls
// back to the designated default; a dangling one is a field error.
func (s *CatalogService) fillProduct(p *domain.Product, in ProductInput, excludeID string) error {
	fields := map[string]string{}

	name, ok := validate.Name(in.Name)
	if !ok {
		fields["name"] = "required, at most 100 characters"
	}
	if in.Price.IsNegative() {
		fields["price"] = "must not be negative"
	}
	if in.StockQuantity < 0 {
		fields["stock_quantity"] = "must not be negative"
	}
	img, ok := validate.ImageURL(in.ImageURL)
	if !ok {
		fields["image_url"] = "must be an absolute http(s) URL"
	}

	if p.CategoryID == "" {
		p.CategoryID = repos.FallbackCategoryID
	}
	if _, err := s.Cats.Get(p.CategoryID); errors.Is(err, domain.ErrNotFound) {
		fields["category_id"] = "unknown category"
	} else if err != nil {
		return err
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}

	taken, err := s.Prods.NameTaken(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrConflict
	}

	p.Name = name
	p.Description = in.Description
	p.Price = in.Price.Round(2)
	p.ImageURL = img
	return nil
}

// ---------- Categories ----------

func (s *CatalogService) ListCategories(actor domain.Actor) ([]domain.Category, error) {
	if err := authz.Authorize(authz.Categories, authz.List, actor); err != nil {
		return nil, err
	}
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(actor domain.Actor, id string) (domain.Category, error) {
	if err := authz.Authorize(authz.Categories, authz.Retrieve, actor); err != nil {
		return domain.Category{}, err
	}
	return s.Cats.Get(id)
}

func (s *CatalogService) CreateCategory(actor domain.Actor, in CategoryInput) (domain.Category, error) {
	if err := authz.Authorize(authz.Categories, authz.Create, actor); err != nil {
		return domain.Category{}, err
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Category{}, domain.Invalid("name", "required, at most 100 characters")
	}
	taken, err := s.Cats.NameTaken(name, "")
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, domain.ErrConflict
	}
	c := domain.Category{ID: uuid.NewString(), Name: name, Description: in.Description}
	if err := s.Cats.Insert(c); err != nil {
		return domain.Category{}, err
	}
	return s.Cats.Get(c.ID)
}

func (s *CatalogService) UpdateCategory(actor domain.Actor, id string, in CategoryInput) (domain.Category, error) {
	if err := authz.Authorize(authz.Categories, authz.Update, actor); err != nil {
		return domain.Category{}, err
	}
	cur, err := s.Cats.Get(id)
	if err != nil {
		return domain.Category{}, err
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Category{}, domain.Invalid("name", "required, at most 100 characters")
	}
	taken, err := s.Cats.NameTaken(name, cur.ID)
	if err != nil {
		return domain.Category{}, err
	}
	if taken {
		return domain.Category{}, domain.ErrConflict
	}
	cur.Name = name
	cur.Description = in.Description
	if err := s.Cats.Update(cur); err != nil {
		return domain.Category{}, err
	}
	return s.Cats.Get(id)
}

// DeleteCategory removes the category and, through the cascading
// foreign key, every product in it.
func (s *CatalogService) DeleteCategory(actor domain.Actor, id string) error {
	if err := authz.Authorize(authz.Categories, authz.Delete, actor); err != nil {
		return err
	}
	return s.Cats.Delete(id)
}
