package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/services"
)

// newTestApp builds the app around a fresh :memory: store with the
// seeded demo data and pre-bound sessions for alice, bob and admin.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	for _, s := range [][2]string{
		{"sid-alice", "u-alice"}, {"sid-bob", "u-bob"}, {"sid-admin", "u-admin"},
	} {
		if err := userRepo.BindSession(s[0], s[1]); err != nil {
			t.Fatalf("bind session: %v", err)
		}
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db)
	api := app.Group("/api/v1")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Retrieve)
	api.Post("/products", deps.ProductHandler.Create)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)
	api.Get("/categories", deps.CategoryHandler.List)
	api.Post("/categories", deps.CategoryHandler.Create)
	api.Delete("/categories/:id", deps.CategoryHandler.Delete)
	api.Get("/users", deps.UserHandler.List)
	api.Post("/users", deps.UserHandler.Register)
	api.Get("/orders", deps.OrderHandler.List)
	api.Get("/orders/:id", deps.OrderHandler.Retrieve)
	api.Post("/orders", deps.OrderHandler.Place)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, sid, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func decodeObj(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestProductListPublicAndFiltered(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/products", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("anonymous list: want 200, got %d", resp.StatusCode)
	}
	if got := decodeList(t, resp); len(got) != 3 {
		t.Fatalf("want 3 seeded products, got %d", len(got))
	}

	resp = doJSON(t, app, "GET", "/api/v1/products?min_price=50&in_stock=true", "", "")
	got := decodeList(t, resp)
	if len(got) != 1 || got[0]["id"] != "prod-kbd" {
		t.Fatalf("filtered list: want [prod-kbd], got %v", got)
	}

	// malformed bound is ignored, not an error
	resp = doJSON(t, app, "GET", "/api/v1/products?min_price=abc", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("malformed bound: want 200, got %d", resp.StatusCode)
	}
	if got := decodeList(t, resp); len(got) != 3 {
		t.Fatalf("malformed bound must not constrain, got %d", len(got))
	}
}

func TestProductWritePermissions(t *testing.T) {
	app := newTestApp(t)
	body := `{"name":"Widget","price":"9.99","category_id":"electronics"}`

	resp := doJSON(t, app, "POST", "/api/v1/products", "", body)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create: want 401, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/v1/products", "sid-alice", body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin create: want 403, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/v1/products", "sid-admin", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin create: want 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/v1/products", "sid-admin", body)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate name: want 409, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/v1/products", "sid-admin", `{"name":"","price":"-3"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid payload: want 400, got %d", resp.StatusCode)
	}
	obj := decodeObj(t, resp)
	if _, ok := obj["fields"]; !ok {
		t.Fatalf("validation response missing field map: %v", obj)
	}
}

func TestCategoryEndpointsRequireLogin(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/categories", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/categories", "sid-bob", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("user: want 200, got %d", resp.StatusCode)
	}
}

func TestCategoryDeleteCascades(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "DELETE", "/api/v1/categories/electronics", "sid-alice", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/products/prod-kbd", "", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cascaded product: want 404, got %d", resp.StatusCode)
	}
}

func TestOrderOwnershipMaskedAsNotFound(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/orders", "sid-alice",
		`{"items":[{"product_id":"prod-gopher","qty":2}]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("place: want 201, got %d", resp.StatusCode)
	}
	oid, _ := decodeObj(t, resp)["id"].(string)
	if oid == "" {
		t.Fatal("no order id in response")
	}

	resp = doJSON(t, app, "GET", "/api/v1/orders/"+oid, "sid-bob", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user get: want 404, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/orders/"+oid, "sid-alice", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner get: want 200, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/orders/"+oid, "sid-admin", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin get: want 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/v1/orders", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous list: want 401, got %d", resp.StatusCode)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/users", "",
		`{"username":"carol","email":"carol@example.test","password":"Sup3rSecret"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: want 201, got %d", resp.StatusCode)
	}
	obj := decodeObj(t, resp)
	if _, leaked := obj["password"]; leaked {
		t.Fatalf("password leaked in response: %v", obj)
	}

	resp = doJSON(t, app, "POST", "/api/v1/users", "",
		`{"username":"carol","email":"carol2@example.test","password":"Sup3rSecret"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate username: want 409, got %d", resp.StatusCode)
	}
}
