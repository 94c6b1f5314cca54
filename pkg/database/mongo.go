package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cymbal-superstore/inventory-functions/models"
)

const mongoOpTimeout = 10 * time.Second

type mongoProduct struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Price           int                `bson:"price"`
	Quantity        int                `bson:"quantity"`
	ImgFile         string             `bson:"imgfile"`
	Timestamp       time.Time          `bson:"timestamp"`
	ActualDateAdded time.Time          `bson:"actualdateadded"`
}

func toMongoProduct(p models.Product) mongoProduct {
	return mongoProduct{
		Name:            p.Name,
		Price:           p.Price,
		Quantity:        p.Quantity,
		ImgFile:         p.ImgFile,
		Timestamp:       p.Timestamp,
		ActualDateAdded: p.ActualDateAdded,
	}
}

func (d mongoProduct) product() models.Product {
	return models.Product{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Price:           d.Price,
		Quantity:        d.Quantity,
		ImgFile:         d.ImgFile,
		Timestamp:       d.Timestamp,
		ActualDateAdded: d.ActualDateAdded,
	}
}

// MongoStore keeps the inventory in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects, pings and ensures the lookup indexes.
func NewMongoStore(ctx context.Context, uri, dbName, collection string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("MONGODB_URI not set")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(30 * time.Second).
		SetServerSelectionTimeout(30 * time.Second)
	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Println("Connected to MongoDB")

	s := &MongoStore{client: client, coll: client.Database(dbName).Collection(collection)}
	if err := s.ensureIndexes(connectCtx); err != nil {
		log.Printf("warning: could not ensure indexes: %v", err)
	}
	return s, nil
}

// name is deliberately not unique.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}

func (s *MongoStore) ListAddedSince(ctx context.Context, since time.Time) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{"timestamp": bson.M{"$gt": since}})
	if err != nil {
		return nil, fmt.Errorf("find products added since %s: %w", since.Format(time.RFC3339), err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var doc mongoProduct
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, doc.product())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return products, nil
}

func (s *MongoStore) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{"name": name}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find product %q: %w", name, err)
	}
	defer cursor.Close(ctx)

	ids := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return ids, nil
}

func (s *MongoStore) Insert(ctx context.Context, p models.Product) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	res, err := s.coll.InsertOne(ctx, toMongoProduct(p))
	if err != nil {
		return "", fmt.Errorf("insert product %q: %w", p.Name, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert product %q: unexpected id type %T", p.Name, res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, p models.Product) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": toMongoProduct(p)})
	if err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update product %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return err
	}
	log.Println("MongoDB connection closed.")
	return nil
}
