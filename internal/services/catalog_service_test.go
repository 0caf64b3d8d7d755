package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"storefront/internal/domain"
	"storefront/internal/filter"
	"storefront/internal/repos"
	"storefront/internal/services"
)

var (
	anon      = domain.Anonymous
	alice     = domain.Actor{ID: "u-alice", Authenticated: true}
	bob       = domain.Actor{ID: "u-bob", Authenticated: true}
	adminUser = domain.Actor{ID: "u-admin", Authenticated: true, Admin: true}
)

func testdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func newCatalog(t *testing.T) *services.CatalogService {
	t.Helper()
	db := testdb(t)
	return services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestListProductsIsPublicAndFilters(t *testing.T) {
	svc := newCatalog(t)

	all, err := svc.ListProducts(anon, filter.Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 seeded products, got %d", len(all))
	}

	got, err := svc.ListProducts(anon, filter.ParseCriteria(map[string]string{
		"category": "electronics", "in_stock": "true",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "prod-kbd" {
		t.Fatalf("want [prod-kbd], got %+v", got)
	}

	// empty result is not an error
	none, err := svc.ListProducts(anon, filter.ParseCriteria(map[string]string{"min_price": "10000"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("want empty result, got %d", len(none))
	}
}

func TestCreateProductPermissions(t *testing.T) {
	svc := newCatalog(t)
	in := services.ProductInput{Name: "Widget", Price: dec("9.99"), CategoryID: "electronics"}

	if _, err := svc.CreateProduct(anon, in); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous create: want ErrUnauthorized, got %v", err)
	}
	if _, err := svc.CreateProduct(alice, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin create: want ErrForbidden, got %v", err)
	}
	p, err := svc.CreateProduct(adminUser, in)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if p.Name != "Widget" || p.CategoryName != "Electronics" {
		t.Fatalf("bad created product: %+v", p)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.CreateProduct(adminUser, services.ProductInput{
		Name: "", Price: dec("-1"), CategoryID: "nope", StockQuantity: -2,
	})
	ve, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	for _, f := range []string{"name", "price", "stock_quantity", "category_id"} {
		if _, present := ve.Fields[f]; !present {
			t.Fatalf("missing field error for %q in %v", f, ve.Fields)
		}
	}

	// duplicate name is a conflict, not a validation failure
	_, err = svc.CreateProduct(adminUser, services.ProductInput{Name: "Wireless Mouse", Price: dec("5")})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want ErrConflict for duplicate name, got %v", err)
	}
}

func TestCreateProductFallbackCategory(t *testing.T) {
	svc := newCatalog(t)

	p, err := svc.CreateProduct(adminUser, services.ProductInput{Name: "Mystery Box", Price: dec("1.50")})
	if err != nil {
		t.Fatal(err)
	}
	if p.CategoryID != repos.FallbackCategoryID {
		t.Fatalf("want fallback category, got %q", p.CategoryID)
	}
}

func TestUpdateProductKeepsCreatedAt(t *testing.T) {
	svc := newCatalog(t)

	before, err := svc.GetProduct(anon, "prod-kbd")
	if err != nil {
		t.Fatal(err)
	}
	after, err := svc.UpdateProduct(adminUser, "prod-kbd", services.ProductInput{
		Name: "Mechanical Keyboard", Price: dec("79.99"), CategoryID: "electronics", StockQuantity: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !after.Price.Equal(dec("79.99")) || after.StockQuantity != 4 {
		t.Fatalf("update not applied: %+v", after)
	}
	if after.CreatedAt != before.CreatedAt {
		t.Fatalf("created_at changed on update: %q -> %q", before.CreatedAt, after.CreatedAt)
	}
}

func TestUpdateProductKeepsCategoryWhenOmitted(t *testing.T) {
	svc := newCatalog(t)

	after, err := svc.UpdateProduct(adminUser, "prod-kbd", services.ProductInput{
		Name: "Mechanical Keyboard", Price: dec("74.99"), StockQuantity: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if after.CategoryID != "electronics" {
		t.Fatalf("category reassigned on update without one: %q", after.CategoryID)
	}
}

func TestDeleteCategoryCascadesToProducts(t *testing.T) {
	svc := newCatalog(t)

	if err := svc.DeleteCategory(alice, "electronics"); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"prod-kbd", "prod-mouse"} {
		if _, err := svc.GetProduct(anon, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("product %s survived category delete: %v", id, err)
		}
	}
	// unrelated products stay
	if _, err := svc.GetProduct(anon, "prod-gopher"); err != nil {
		t.Fatalf("unrelated product lost: %v", err)
	}
}

func TestCategoryPermissionsAndConflicts(t *testing.T) {
	svc := newCatalog(t)

	if _, err := svc.ListCategories(anon); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous category list: want ErrUnauthorized, got %v", err)
	}
	cats, err := svc.ListCategories(bob)
	if err != nil || len(cats) == 0 {
		t.Fatalf("user category list: %v (%d)", err, len(cats))
	}

	if _, err := svc.CreateCategory(bob, services.CategoryInput{Name: "Books"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate category name: want ErrConflict, got %v", err)
	}
	if _, err := svc.CreateCategory(bob, services.CategoryInput{Name: ""}); err == nil {
		t.Fatal("empty category name must fail validation")
	}
}
