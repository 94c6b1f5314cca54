package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/cymbal-superstore/inventory-functions/models"
)

// RedisStore keeps the inventory in Redis as the primary store:
//
//	<collection>:<id>          product JSON
//	<collection>:ids           set of every product id
//	<collection>:name:<name>   set of ids carrying that name
type RedisStore struct {
	client     *redis.Client
	collection string
}

// NewRedisStore connects to addr and pings the server.
func NewRedisStore(ctx context.Context, addr, password string, db int, collection string) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR environment variable not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pong, err := client.Ping(pingCtx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("Successfully connected to Redis! Ping response: %s", pong)

	return &RedisStore{client: client, collection: collection}, nil
}

func (s *RedisStore) docKey(id string) string {
	return fmt.Sprintf("%s:%s", s.collection, id)
}

func (s *RedisStore) idsKey() string {
	return s.collection + ":ids"
}

func (s *RedisStore) nameKey(name string) string {
	return fmt.Sprintf("%s:name:%s", s.collection, name)
}

func (s *RedisStore) ListAddedSince(ctx context.Context, since time.Time) ([]models.Product, error) {
	ids, err := s.client.SMembers(ctx, s.idsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from Redis: %w", s.idsKey(), err)
	}
	products := make([]models.Product, 0)
	if len(ids) == 0 {
		return products, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(id)
	}
	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to MGET products from Redis: %w", err)
	}

	for i, res := range results {
		if res == nil {
			// id left behind without a document
			log.Printf("Product %s listed in %s but missing, skipping.", ids[i], s.idsKey())
			continue
		}
		raw, ok := res.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type from Redis MGET: %T", res)
		}
		var p models.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product %s: %w", ids[i], err)
		}
		p.ID = ids[i]
		if p.Timestamp.After(since) {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *RedisStore) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.nameKey(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %q in Redis: %w", name, err)
	}
	return ids, nil
}

func (s *RedisStore) Insert(ctx context.Context, p models.Product) (string, error) {
	id := uuid.New().String()
	p.ID = id
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal product %q: %w", p.Name, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.docKey(id), body, 0)
		pipe.SAdd(ctx, s.idsKey(), id)
		pipe.SAdd(ctx, s.nameKey(p.Name), id)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert product %q into Redis: %w", p.Name, err)
	}
	return id, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, p models.Product) error {
	raw, err := s.client.Get(ctx, s.docKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to update product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read product %s from Redis: %w", id, err)
	}
	var old models.Product
	if err := json.Unmarshal([]byte(raw), &old); err != nil {
		return fmt.Errorf("failed to unmarshal product %s: %w", id, err)
	}

	p.ID = id
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal product %q: %w", p.Name, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if old.Name != p.Name {
			pipe.SRem(ctx, s.nameKey(old.Name), id)
			pipe.SAdd(ctx, s.nameKey(p.Name), id)
		}
		pipe.Set(ctx, s.docKey(id), body, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update product %s in Redis: %w", id, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return err
	}
	log.Println("Redis connection closed.")
	return nil
}
