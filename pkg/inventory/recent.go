package inventory

import (
	"context"
	"time"

	"github.com/cymbal-superstore/inventory-functions/models"
	"github.com/cymbal-superstore/inventory-functions/pkg/database"
)

// NewProductWindow is how far back a product counts as new.
const NewProductWindow = 7 * day

// RecentProducts returns every product added after now-window, projected
// with its quantity in the name. Order is whatever the store returns.
func RecentProducts(ctx context.Context, store database.Store, now time.Time, window time.Duration) ([]models.NewProduct, error) {
	products, err := store.ListAddedSince(ctx, now.Add(-window))
	if err != nil {
		return nil, err
	}

	out := make([]models.NewProduct, 0, len(products))
	for _, p := range products {
		out = append(out, p.ToNewProduct())
	}
	return out, nil
}
