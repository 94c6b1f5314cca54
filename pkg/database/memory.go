package database

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cymbal-superstore/inventory-functions/models"
)

// MemoryStore keeps the inventory in process memory. It backs the tests and
// STORE_BACKEND=memory for local runs without a hosted database.
//
// The Fail* fields inject errors into the matching operations.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]models.Product
	order []string

	FailReads   error
	FailInserts error
	FailUpdates error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]models.Product)}
}

func (m *MemoryStore) ListAddedSince(ctx context.Context, since time.Time) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailReads != nil {
		return nil, m.FailReads
	}
	out := make([]models.Product, 0)
	for _, id := range m.order {
		p := m.docs[id]
		if p.Timestamp.After(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailReads != nil {
		return nil, m.FailReads
	}
	ids := make([]string, 0)
	for _, id := range m.order {
		if m.docs[id].Name == name {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MemoryStore) Insert(ctx context.Context, p models.Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInserts != nil {
		return "", m.FailInserts
	}
	id := uuid.New().String()
	p.ID = id
	m.docs[id] = p
	m.order = append(m.order, id)
	return id, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpdates != nil {
		return m.FailUpdates
	}
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	p.ID = id
	m.docs[id] = p
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Products returns a snapshot of every stored document in insertion order.
func (m *MemoryStore) Products() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Product, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.docs[id])
	}
	return out
}

// Put stores p under a fresh id without any checks, for seeding fixtures.
func (m *MemoryStore) Put(p models.Product) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	p.ID = id
	m.docs[id] = p
	m.order = append(m.order, id)
	return id
}
