package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cymbal-superstore/inventory-functions/models"
	"github.com/cymbal-superstore/inventory-functions/pkg/database"
	"github.com/cymbal-superstore/inventory-functions/pkg/inventory"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestHandler(store database.Store) *Handler {
	clock := func() time.Time { return testNow }
	gen := inventory.NewGenerator("product-images/", clock, rand.NewSource(42))
	return New(store, inventory.NewSeeder(store, gen, 0), inventory.NewProductWindow, clock)
}

func TestNewProductsEmpty(t *testing.T) {
	h := newTestHandler(database.NewMemoryStore())

	resp, err := h.NewProducts(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "GET"})
	if err != nil {
		t.Fatalf("NewProducts: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Body != "[]" {
		t.Errorf("expected empty JSON array, got %q", resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Errorf("missing CORS header: %v", resp.Headers)
	}
}

func TestNewProductsProjection(t *testing.T) {
	store := database.NewMemoryStore()
	id := store.Put(models.Product{
		Name:            "Smores Cereal",
		Price:           4,
		Quantity:        17,
		ImgFile:         "product-images/smorescereal.png",
		Timestamp:       testNow.Add(-24 * time.Hour),
		ActualDateAdded: testNow,
	})
	store.Put(models.Product{
		Name:            "Beef",
		Price:           9,
		Quantity:        200,
		ImgFile:         "product-images/beef.png",
		Timestamp:       testNow.Add(-30 * 24 * time.Hour),
		ActualDateAdded: testNow,
	})
	h := newTestHandler(store)

	resp, err := h.NewProducts(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "POST"})
	if err != nil {
		t.Fatalf("NewProducts: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []models.NewProduct
	if err := json.Unmarshal([]byte(resp.Body), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d", len(got))
	}
	if got[0].ID != id || got[0].Name != "Smores Cereal (17)" || got[0].Price != 4 || got[0].Quantity != 17 {
		t.Errorf("unexpected projection: %+v", got[0])
	}
	if got[0].ImgFile != "product-images/smorescereal.png" {
		t.Errorf("unexpected imgfile %q", got[0].ImgFile)
	}
}

func TestNewProductsStoreError(t *testing.T) {
	store := database.NewMemoryStore()
	store.FailReads = errors.New("connection reset by peer")
	h := newTestHandler(store)

	resp, err := h.NewProducts(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("expected error to be absorbed, got %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if resp.Body != msgFetchFailed {
		t.Errorf("expected generic message, got %q", resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Errorf("missing CORS header on error: %v", resp.Headers)
	}
}

func TestSeedThenQuery(t *testing.T) {
	store := database.NewMemoryStore()
	h := newTestHandler(store)
	ctx := context.Background()

	resp, err := h.SeedProducts(ctx, events.APIGatewayProxyRequest{HTTPMethod: "GET"})
	if err != nil {
		t.Fatalf("SeedProducts: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Body != msgSeeded {
		t.Fatalf("unexpected seed response: %d %q", resp.StatusCode, resp.Body)
	}
	if n := len(store.Products()); n != 34 {
		t.Fatalf("expected 34 documents, got %d", n)
	}

	resp, err = h.NewProducts(ctx, events.APIGatewayProxyRequest{HTTPMethod: "GET"})
	if err != nil {
		t.Fatalf("NewProducts: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got []models.NewProduct
	if err := json.Unmarshal([]byte(resp.Body), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected 10 new products after seeding, got %d", len(got))
	}
	outOfStock := 0
	for _, p := range got {
		if p.Quantity == 0 {
			outOfStock++
		}
	}
	if outOfStock != 2 {
		t.Errorf("expected 2 out of stock new products, got %d", outOfStock)
	}
}

func TestSeedSurvivesCanceledRequest(t *testing.T) {
	store := database.NewMemoryStore()
	h := newTestHandler(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := h.SeedProducts(ctx, events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("SeedProducts: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if n := len(store.Products()); n != 34 {
		t.Errorf("expected 34 documents, got %d", n)
	}
}

func TestSeedStoreError(t *testing.T) {
	store := database.NewMemoryStore()
	store.FailInserts = errors.New("quota exceeded")
	h := newTestHandler(store)

	resp, err := h.SeedProducts(context.Background(), events.APIGatewayProxyRequest{})
	if err != nil {
		t.Fatalf("expected error to be absorbed, got %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError || resp.Body != msgSeedFailed {
		t.Errorf("unexpected response: %d %q", resp.StatusCode, resp.Body)
	}
}
