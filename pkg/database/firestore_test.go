package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cymbal-superstore/inventory-functions/models"
)

func TestProductUpdatesCoverStoredFields(t *testing.T) {
	ts := time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)
	added := ts.Add(time.Hour)
	p := models.Product{
		ID:              "should-not-be-written",
		Name:            "Cola",
		Price:           3,
		Quantity:        0,
		ImgFile:         "product-images/cola.png",
		Timestamp:       ts,
		ActualDateAdded: added,
	}

	want := map[string]interface{}{
		"name":            "Cola",
		"price":           3,
		"quantity":        0,
		"imgfile":         "product-images/cola.png",
		"timestamp":       ts,
		"actualdateadded": added,
	}

	updates := productUpdates(p)
	if len(updates) != len(want) {
		t.Fatalf("expected %d field paths, got %d", len(want), len(updates))
	}
	for _, u := range updates {
		v, ok := want[u.Path]
		if !ok {
			t.Errorf("unexpected field path %q", u.Path)
			continue
		}
		if u.Value != v {
			t.Errorf("%s: got %v, want %v", u.Path, u.Value, v)
		}
		delete(want, u.Path)
	}
	if len(want) != 0 {
		t.Errorf("missing field paths: %v", want)
	}
}

// newEmulatorStore connects to the Firestore emulator, using a fresh
// collection per test. The client picks up FIRESTORE_EMULATOR_HOST itself.
func newEmulatorStore(t *testing.T) *FirestoreStore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	collection := fmt.Sprintf("inventory_test_%d", time.Now().UnixNano())
	store, err := NewFirestoreStore(context.Background(), "inventory-test", collection)
	if err != nil {
		t.Fatalf("NewFirestoreStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFirestoreListAddedSinceIsStrict(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()
	cutoff := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	for _, p := range []models.Product{
		product("Before", cutoff.Add(-time.Second)),
		product("Exact", cutoff),
		product("After", cutoff.Add(time.Second)),
	} {
		if _, err := store.Insert(ctx, p); err != nil {
			t.Fatalf("Insert %s: %v", p.Name, err)
		}
	}

	got, err := store.ListAddedSince(ctx, cutoff)
	if err != nil {
		t.Fatalf("ListAddedSince: %v", err)
	}
	if len(got) != 1 || got[0].Name != "After" || got[0].ID == "" {
		t.Fatalf("expected only 'After' with an id, got %+v", got)
	}
}

func TestFirestoreFindAndUpdateDuplicates(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	a, err := store.Insert(ctx, product("Apples", now))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	b, err := store.Insert(ctx, product("Apples", now))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	ids, err := store.FindIDsByName(ctx, "Apples")
	if err != nil {
		t.Fatalf("FindIDsByName: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected both duplicates, got %v", ids)
	}

	updated := product("Apples", now)
	updated.Quantity = 321
	for _, id := range []string{a, b} {
		if err := store.Update(ctx, id, updated); err != nil {
			t.Fatalf("Update %s: %v", id, err)
		}
	}

	got, err := store.ListAddedSince(ctx, now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("ListAddedSince: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got))
	}
	for _, p := range got {
		if p.Quantity != 321 {
			t.Errorf("document %s not overwritten: %+v", p.ID, p)
		}
	}
}
