package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cymbal-superstore/inventory-functions/models"
	"github.com/cymbal-superstore/inventory-functions/pkg/config"
)

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrNotFound is returned by Update when no document has the given id.
	ErrNotFound = errors.New("product not found")
)

// Store is the inventory collection as seen by the functions. Names are a
// lookup key only; no backend enforces their uniqueness.
type Store interface {
	// ListAddedSince returns every product whose timestamp is strictly after since.
	ListAddedSince(ctx context.Context, since time.Time) ([]models.Product, error)
	// FindIDsByName returns the ids of all documents whose name matches exactly.
	FindIDsByName(ctx context.Context, name string) ([]string, error)
	// Insert adds p as a new document and returns its id.
	Insert(ctx context.Context, p models.Product) (string, error)
	// Update overwrites the product fields of the document with the given id.
	Update(ctx context.Context, id string, p models.Product) error
	Close() error
}

// Open connects to the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		store, err = NewFirestoreStore(ctx, cfg.FirestoreProject, cfg.Collection)
	case config.BackendMongo:
		store, err = NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Collection)
	case config.BackendPostgres:
		store, err = NewPostgresStore(ctx, cfg.PostgresDSN(), cfg.Collection)
	case config.BackendRedis:
		store, err = NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.Collection)
	case config.BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("Using %s store for collection %q.", cfg.StoreBackend, cfg.Collection)
	return store, nil
}
