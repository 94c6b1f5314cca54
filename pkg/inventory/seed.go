package inventory

import (
	"context"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cymbal-superstore/inventory-functions/pkg/database"
)

// SeedResult summarizes a completed seed run.
type SeedResult struct {
	Inserted int
	Updated  int
}

// Seeder writes the demo catalog into a store.
type Seeder struct {
	store database.Store
	gen   *Generator
	limit int
}

// NewSeeder returns a seeder. limit caps the number of in-flight upserts;
// zero or less means no cap.
func NewSeeder(store database.Store, gen *Generator, limit int) *Seeder {
	return &Seeder{store: store, gen: gen, limit: limit}
}

// Seed upserts every catalog product concurrently and waits for all of them
// to finish. It returns the first error encountered. Writes that succeeded
// before a failure are kept; there is no rollback.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var (
		g        errgroup.Group
		inserted atomic.Int64
		updated  atomic.Int64
	)
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}

	for _, c := range s.gen.Generate() {
		c := c // per-iteration copy (pre-Go 1.22 loop semantics)
		log.Printf("Adding (or updating) %s product: %s", c.Group, c.Product.Name)
		g.Go(func() error {
			res, err := Upsert(ctx, s.store, c.Product)
			if err != nil {
				log.Printf("Error upserting product %s: %v", c.Product.Name, err)
				return err
			}
			if res.InsertedID != "" {
				inserted.Add(1)
			}
			updated.Add(int64(len(res.UpdatedIDs)))
			return nil
		})
	}

	err := g.Wait()
	return SeedResult{Inserted: int(inserted.Load()), Updated: int(updated.Load())}, err
}
