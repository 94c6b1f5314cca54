package handler

import (
	"context"
	"fmt"

	"github.com/cymbal-superstore/inventory-functions/pkg/config"
	"github.com/cymbal-superstore/inventory-functions/pkg/database"
	"github.com/cymbal-superstore/inventory-functions/pkg/inventory"
)

// Setup loads the environment, opens the configured store and builds a
// Handler over it. The caller owns the returned store and must close it.
func Setup(ctx context.Context) (*Handler, database.Store, *config.Config, error) {
	config.LoadEnv() // Load environment variables first

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}

	gen := inventory.NewGenerator(cfg.ImageDir, nil, nil)
	seeder := inventory.NewSeeder(store, gen, cfg.SeedConcurrency)
	return New(store, seeder, cfg.NewWindow, nil), store, cfg, nil
}
