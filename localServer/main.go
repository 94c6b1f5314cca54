package main

import (
	"context"
	"log"

	"github.com/cymbal-superstore/inventory-functions/pkg/handler"
	"github.com/cymbal-superstore/inventory-functions/pkg/handler/local"
)

// Serves /newproducts and /seedproducts over HTTP for local development.
func main() {
	h, store, cfg, err := handler.Setup(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize local server: %v", err)
	}
	defer store.Close()

	log.Printf("Listening on %s", cfg.LocalAddr)
	if err := local.Router(h).Run(cfg.LocalAddr); err != nil {
		log.Printf("Local server stopped: %v", err)
	}
}
