package local

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cymbal-superstore/inventory-functions/pkg/database"
	"github.com/cymbal-superstore/inventory-functions/pkg/handler"
	"github.com/cymbal-superstore/inventory-functions/pkg/inventory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(store database.Store) *gin.Engine {
	clock := func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	gen := inventory.NewGenerator("product-images/", clock, rand.NewSource(42))
	h := handler.New(store, inventory.NewSeeder(store, gen, 0), inventory.NewProductWindow, clock)
	return Router(h)
}

func TestRouterSeedAndQuery(t *testing.T) {
	store := database.NewMemoryStore()
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/seedproducts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("seed: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "Database seeded successfully." {
		t.Errorf("seed: unexpected body %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/newproducts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("newproducts: expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS header '*', got %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %q", got)
	}
}

func TestRouterUnknownPath(t *testing.T) {
	r := newTestRouter(database.NewMemoryStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
