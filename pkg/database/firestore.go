package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/cymbal-superstore/inventory-functions/models"
)

// FirestoreStore keeps the inventory in a Firestore collection.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore opens a Firestore client. An empty projectID lets the
// client detect the project from the hosting environment.
func NewFirestoreStore(ctx context.Context, projectID, collection string) (*FirestoreStore, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	log.Println("Successfully created Firestore client!")
	return &FirestoreStore{client: client, collection: collection}, nil
}

func (s *FirestoreStore) coll() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *FirestoreStore) ListAddedSince(ctx context.Context, since time.Time) ([]models.Product, error) {
	snaps, err := s.coll().Where("timestamp", ">", since).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query products added since %s: %w", since.Format(time.RFC3339), err)
	}

	products := make([]models.Product, 0, len(snaps))
	for _, snap := range snaps {
		var p models.Product
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", snap.Ref.ID, err)
		}
		p.ID = snap.Ref.ID
		products = append(products, p)
	}
	return products, nil
}

func (s *FirestoreStore) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	snaps, err := s.coll().Where("name", "==", name).Select().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %q: %w", name, err)
	}
	ids := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		ids = append(ids, snap.Ref.ID)
	}
	return ids, nil
}

func (s *FirestoreStore) Insert(ctx context.Context, p models.Product) (string, error) {
	ref, _, err := s.coll().Add(ctx, p)
	if err != nil {
		return "", fmt.Errorf("failed to add product %q: %w", p.Name, err)
	}
	return ref.ID, nil
}

// Update sets the product fields and leaves any other fields on the
// document untouched.
func (s *FirestoreStore) Update(ctx context.Context, id string, p models.Product) error {
	_, err := s.coll().Doc(id).Update(ctx, productUpdates(p))
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return nil
}

// productUpdates lists one field path per stored product field.
func productUpdates(p models.Product) []firestore.Update {
	return []firestore.Update{
		{Path: "name", Value: p.Name},
		{Path: "price", Value: p.Price},
		{Path: "quantity", Value: p.Quantity},
		{Path: "imgfile", Value: p.ImgFile},
		{Path: "timestamp", Value: p.Timestamp},
		{Path: "actualdateadded", Value: p.ActualDateAdded},
	}
}

func (s *FirestoreStore) Close() error {
	if err := s.client.Close(); err != nil {
		return err
	}
	log.Println("Firestore client closed.")
	return nil
}
