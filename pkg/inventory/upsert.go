package inventory

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cymbal-superstore/inventory-functions/models"
	"github.com/cymbal-superstore/inventory-functions/pkg/database"
)

// UpsertResult reports what Upsert wrote.
type UpsertResult struct {
	InsertedID string
	UpdatedIDs []string
}

// Upsert inserts p unless a document with the same name exists, in which case
// every document with that name is overwritten with p's fields. Updates to
// duplicate names are issued concurrently.
//
// Lookup and write are separate calls, so two concurrent upserts of the
// same name can both insert.
func Upsert(ctx context.Context, store database.Store, p models.Product) (UpsertResult, error) {
	var res UpsertResult
	if err := p.Validate(); err != nil {
		return res, err
	}

	ids, err := store.FindIDsByName(ctx, p.Name)
	if err != nil {
		return res, fmt.Errorf("lookup %q: %w", p.Name, err)
	}

	if len(ids) == 0 {
		id, err := store.Insert(ctx, p)
		if err != nil {
			return res, fmt.Errorf("insert %q: %w", p.Name, err)
		}
		res.InsertedID = id
		return res, nil
	}

	// TODO: collapse duplicate names into one document once the catalog
	// owners confirm duplicates are never intentional.
	var g errgroup.Group
	for _, id := range ids {
		id := id // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := store.Update(ctx, id, p); err != nil {
				return fmt.Errorf("update %q (%s): %w", p.Name, id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	res.UpdatedIDs = ids
	return res, nil
}
