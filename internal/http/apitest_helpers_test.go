package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"webstore/internal/config"
	"webstore/internal/http/handlers"
	"webstore/internal/repos"
	"webstore/internal/services"
)

var reTrackHTTP = regexp.MustCompile(`^TRK[0-9]{6}$`)

// newAPIApp builds the JSON API against a fresh seeded in-memory store,
// wired the same way main does but without the global throttles so tests
// can hammer endpoints freely.
func newAPIApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	custRepo := repos.NewCustomerRepo(db)
	authSvc := &services.AuthService{Customers: custRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	deps := handlers.NewDeps(db, config.Config{LowStockThreshold: 5})

	app := fiber.New()
	api := app.Group("/api")

	api.Get("/products", deps.CatalogHandler.List)
	api.Get("/products/search", deps.CatalogHandler.Search)
	api.Get("/products/types", deps.CatalogHandler.Types)
	api.Get("/products/:id", deps.CatalogHandler.Get)
	api.Get("/v1/availability", deps.InventoryHandler.Check)
	api.Get("/discounts/:code", deps.DiscountHandler.Validate)
	api.Post("/checkout", handlers.RequireUser(authSvc), deps.CheckoutHandler.Place)
	api.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	api.Get("/orders/track/:trackingNumber", deps.OrderHandler.Track)
	api.Get("/wishlist", deps.WishlistHandler.List)
	api.Post("/wishlist", deps.WishlistHandler.Save)
	api.Delete("/wishlist/:productId", deps.WishlistHandler.Unsave)
	api.Post("/chat/messages", deps.ChatHandler.Log)
	api.Get("/chat/sessions/:id/messages", deps.ChatHandler.History)
	api.Get("/chat/sessions", handlers.RequireUser(authSvc), deps.ChatHandler.Sessions)
	api.Post("/login", authH.Login)
	api.Post("/logout", authH.Logout)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/dashboard", deps.AdminHandler.Dashboard)
	admin.Get("/inventory", deps.AdminHandler.Inventory)
	admin.Post("/inventory", deps.AdminHandler.UpdateInventory)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	return app
}

func jsonReq(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

// loginAs exercises the real login endpoint and returns the bearer token.
func loginAs(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	req := jsonReq(t, "POST", "/api/login", map[string]string{
		"email":    email,
		"password": "Passw0rd!",
	})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	tok, _ := decodeBody(t, resp)["token"].(string)
	if tok == "" {
		t.Fatalf("login %s: no token in response", email)
	}
	return tok
}

func validCheckoutBody() map[string]any {
	return map[string]any{
		"cartLines": []map[string]any{
			{"productId": "tee-classic", "quantity": 2, "unitPrice": 19.99, "size": "M"},
		},
		"paymentMethod": "CARD",
		"cardDetails": map[string]string{
			"number":  "4111111111111111",
			"expDate": "11/27",
			"cvv":     "321",
			"holder":  "Alice",
		},
		"shippingAddress": map[string]string{
			"address":    "12 Main St",
			"city":       "College Park",
			"state":      "MD",
			"postalCode": "20742",
			"country":    "USA",
		},
	}
}
