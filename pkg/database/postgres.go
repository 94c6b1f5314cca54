package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cymbal-superstore/inventory-functions/models"
)

// PostgresStore keeps the inventory in a PostgreSQL table named after the
// collection.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgresStore opens a connection pool, pings the server and creates the
// table if it does not exist.
func NewPostgresStore(ctx context.Context, dsn, collection string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Successfully connected to PostgreSQL!")

	s := &PostgresStore{db: db, table: pq.QuoteIdentifier(collection)}
	if err := s.ensureSchema(pingCtx, collection); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			price           INTEGER NOT NULL,
			quantity        INTEGER NOT NULL,
			imgfile         TEXT NOT NULL,
			"timestamp"     TIMESTAMPTZ NOT NULL,
			actualdateadded TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS %s ON %s (name);
	`, s.table, pq.QuoteIdentifier(collection+"_name_idx"), s.table))
	if err != nil {
		return fmt.Errorf("failed to create %s table: %w", collection, err)
	}
	return nil
}

func (s *PostgresStore) ListAddedSince(ctx context.Context, since time.Time) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, name, price, quantity, imgfile, "timestamp", actualdateadded FROM %s WHERE "timestamp" > $1`,
		s.table), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query products from DB: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.ImgFile, &p.Timestamp, &p.ActualDateAdded); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration from DB: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, s.table), name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %q: %w", name, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) Insert(ctx context.Context, p models.Product) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, name, price, quantity, imgfile, "timestamp", actualdateadded)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, s.table), id, p.Name, p.Price, p.Quantity, p.ImgFile, p.Timestamp, p.ActualDateAdded)
	if err != nil {
		return "", fmt.Errorf("failed to insert product %q: %w", p.Name, err)
	}
	return id, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, p models.Product) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s SET name = $2, price = $3, quantity = $4, imgfile = $5,
			"timestamp" = $6, actualdateadded = $7
		WHERE id = $1
	`, s.table), id, p.Name, p.Price, p.Quantity, p.ImgFile, p.Timestamp, p.ActualDateAdded)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update product %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	log.Println("PostgreSQL connection closed.")
	return nil
}
