package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cymbal-superstore/inventory-functions/pkg/database"
	"github.com/cymbal-superstore/inventory-functions/pkg/inventory"
)

const (
	msgFetchFailed = "Internal Server Error: Could not fetch new products."
	msgSeedFailed  = "Internal Server Error: Could not seed database."
	msgSeeded      = "Database seeded successfully."
)

// Handler serves the newproducts and seedproducts functions over one store.
type Handler struct {
	store  database.Store
	seeder *inventory.Seeder
	window time.Duration
	now    func() time.Time
}

// New returns a Handler. A nil now uses time.Now.
func New(store database.Store, seeder *inventory.Seeder, window time.Duration, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{store: store, seeder: seeder, window: window, now: now}
}

// NewProducts lists products added within the window. Any method is accepted.
func (h *Handler) NewProducts(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log.Printf("Received %s request: %s", request.HTTPMethod, request.Path)

	products, err := inventory.RecentProducts(ctx, h.store, h.now(), h.window)
	if err != nil {
		log.Printf("Error fetching new products: %v", err)
		return withCORS(textResponse(http.StatusInternalServerError, msgFetchFailed)), nil
	}

	body, err := json.Marshal(products)
	if err != nil {
		log.Printf("Error marshaling products to JSON: %v", err)
		return withCORS(textResponse(http.StatusInternalServerError, msgFetchFailed)), nil
	}

	log.Printf("Returning %d new products.", len(products))
	return withCORS(events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}), nil
}

// SeedProducts runs the seed routine to completion. The routine is detached
// from request cancellation, so a client disconnect does not stop it.
func (h *Handler) SeedProducts(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log.Printf("Received %s request: %s", request.HTTPMethod, request.Path)

	res, err := h.seeder.Seed(context.WithoutCancel(ctx))
	if err != nil {
		log.Printf("Error seeding database: %v", err)
		return textResponse(http.StatusInternalServerError, msgSeedFailed), nil
	}

	log.Printf("Seeded database: %d inserted, %d updated.", res.Inserted, res.Updated)
	return textResponse(http.StatusOK, msgSeeded), nil
}

func textResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:       body,
	}
}

func withCORS(resp events.APIGatewayProxyResponse) events.APIGatewayProxyResponse {
	resp.Headers["Access-Control-Allow-Origin"] = "*"
	return resp
}
