package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/cymbal-superstore/inventory-functions/pkg/handler"
)

// seedproducts is invoked on demand only; it is never scheduled.
func main() {
	h, store, _, err := handler.Setup(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize seedproducts: %v", err)
	}
	defer store.Close()

	lambda.Start(h.SeedProducts)
}
