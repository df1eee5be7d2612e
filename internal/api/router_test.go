package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/service"
	httphandlers "github.com/oakmart/storefront-api/internal/infrastructure/http/handlers"
	"github.com/oakmart/storefront-api/internal/infrastructure/store/jsonfile"
)

// TestRouter_EndToEnd runs the full login → admin CRUD → user order flow
// against a real jsonfile store in a temp directory. A single router is
// built for the whole test: the prometheus middleware registers collectors
// in the default registry and cannot be constructed twice.
func TestRouter_EndToEnd(t *testing.T) {
	st, err := jsonfile.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	userRepo := jsonfile.NewUserRepository(st)
	productRepo := jsonfile.NewProductRepository(st)
	orderRepo := jsonfile.NewOrderRepository(st)

	log := zerolog.Nop()
	authService := service.NewAuthService(userRepo, "test-secret", time.Hour, log)
	userService := service.NewUserService(userRepo, bcrypt.MinCost, service.BootstrapConfig{
		AdminUsername: "admin",
		AdminPassword: "admin",
	}, log)
	productService := service.NewProductService(productRepo, nil, log)
	orderService := service.NewOrderService(orderRepo, log)

	if err := userService.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	e := NewRouter(Services{
		Auth:     authService,
		Users:    userService,
		Products: productService,
		Orders:   orderService,
	}, log, httphandlers.NewReadinessHandler())

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	login := func(username, password string) (string, int) {
		t.Helper()
		rec := do(http.MethodPost, "/api/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
		if rec.Code != http.StatusOK {
			return "", rec.Code
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid login response: %v", err)
		}
		return resp.Token, rec.Code
	}

	// Bootstrapped admin can log in; a bad password cannot.
	adminToken, code := login("admin", "admin")
	if code != http.StatusOK || adminToken == "" {
		t.Fatalf("admin login failed: %d", code)
	}
	if _, code := login("admin", "wrong"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", code)
	}

	// Catalog is publicly readable and starts empty.
	rec := do(http.MethodGet, "/api/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("public product list: %d", rec.Code)
	}

	// Admin creates a product.
	rec = do(http.MethodPost, "/api/admin/products", adminToken, `{"name":"mug","price":9.5,"description":"stoneware"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: %d body=%s", rec.Code, rec.Body.String())
	}
	var product domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &product); err != nil {
		t.Fatalf("invalid product response: %v", err)
	}
	if product.ID == "" {
		t.Fatalf("product id not assigned")
	}

	// Admin creates a regular user.
	rec = do(http.MethodPost, "/api/admin/users", adminToken, `{"username":"alice","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: %d body=%s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("user response leaked password material: %s", rec.Body.String())
	}

	// Duplicate username is a 400.
	rec = do(http.MethodPost, "/api/admin/users", adminToken, `{"username":"alice","password":"other"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate username, got %d", rec.Code)
	}

	aliceToken, code := login("alice", "pw")
	if code != http.StatusOK || aliceToken == "" {
		t.Fatalf("alice login failed: %d", code)
	}

	// A regular user cannot reach the admin surface.
	rec = do(http.MethodGet, "/api/admin/users", aliceToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	// Orders require a token.
	rec = do(http.MethodGet, "/api/orders", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	rec = do(http.MethodGet, "/api/orders", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}

	// Alice places an order; the total is recorded as supplied.
	orderBody := `{"items":[{"product_ref":"` + product.ID + `","quantity":2,"price_at_order":9.5}],"total":123.45}`
	rec = do(http.MethodPost, "/api/orders", aliceToken, orderBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create order: %d body=%s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("invalid order response: %v", err)
	}
	if order.UserID != "alice" {
		t.Fatalf("order not stamped with caller identity: %+v", order)
	}
	if order.Total != 123.45 {
		t.Fatalf("order total rewritten: %v", order.Total)
	}

	// Alice sees her own order; the admin sees everything.
	rec = do(http.MethodGet, "/api/orders", aliceToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list own orders: %d", rec.Code)
	}
	var aliceOrders []domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &aliceOrders); err != nil {
		t.Fatalf("invalid orders response: %v", err)
	}
	if len(aliceOrders) != 1 || aliceOrders[0].ID != order.ID {
		t.Fatalf("unexpected orders for alice: %+v", aliceOrders)
	}

	rec = do(http.MethodGet, "/api/orders", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list orders: %d", rec.Code)
	}
	var allOrders []domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &allOrders); err != nil {
		t.Fatalf("invalid orders response: %v", err)
	}
	if len(allOrders) != 1 {
		t.Fatalf("admin should see every order, got %d", len(allOrders))
	}

	// Admin updates and deletes the product.
	rec = do(http.MethodPut, "/api/admin/products/"+product.ID, adminToken, `{"price":12.0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update product: %d body=%s", rec.Code, rec.Body.String())
	}
	var updated domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid product response: %v", err)
	}
	if updated.Price != 12.0 || updated.Name != "mug" {
		t.Fatalf("partial update went wrong: %+v", updated)
	}

	rec = do(http.MethodDelete, "/api/admin/products/"+product.ID, adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete product: %d", rec.Code)
	}
	rec = do(http.MethodGet, "/api/products/"+product.ID, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	// Operational endpoints.
	rec = do(http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness: %d", rec.Code)
	}
	rec = do(http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness: %d", rec.Code)
	}
	rec = do(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
}
