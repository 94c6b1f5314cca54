package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for STORE_BACKEND.
const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"
	BackendMemory    = "memory"
)

const (
	defaultCollection = "inventory"
	defaultMongoDB    = "cymbal"
	defaultWindow     = 7 * 24 * time.Hour
	defaultImageDir   = "product-images/"
	defaultLocalAddr  = ":8080"
)

// Config holds everything the functions read from the environment.
type Config struct {
	AppEnv       string
	StoreBackend string
	Collection   string

	FirestoreProject string

	MongoURI      string
	MongoDatabase string

	PostgresURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NewWindow       time.Duration
	SeedConcurrency int
	ImageDir        string
	LocalAddr       string
}

// LoadEnv defaults APP_ENV to "development" and, when running with
// APP_ENV=local, loads .env.local on top of the process environment.
// Variables already set in the environment are never overridden.
func LoadEnv() string {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
		os.Setenv("APP_ENV", appEnv)
	}

	if appEnv != "local" {
		log.Printf("Running in %s environment, using system environment variables.", appEnv)
		return appEnv
	}
	if err := godotenv.Load(".env.local"); err != nil {
		log.Printf("Warning: could not load .env.local (%v), relying on system environment variables.", err)
	} else {
		log.Println("Loaded .env.local for local development.")
	}
	return appEnv
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset or unparsable. Call LoadEnv first so that
// .env.local values are visible.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:           readEnv("APP_ENV", "development"),
		StoreBackend:     strings.ToLower(readEnv("STORE_BACKEND", BackendFirestore)),
		Collection:       readEnv("INVENTORY_COLLECTION", defaultCollection),
		FirestoreProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDatabase:    readEnv("MONGO_DB_NAME", defaultMongoDB),
		PostgresURL:      os.Getenv("DATABASE_URL"),
		DBHost:           readEnv("DB_HOST", "localhost"),
		DBPort:           readEnv("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          parseInt("REDIS_DB", 0),
		NewWindow:        parseDuration("NEW_PRODUCT_WINDOW", defaultWindow),
		SeedConcurrency:  parseInt("SEED_CONCURRENCY", 0),
		ImageDir:         readEnv("PRODUCT_IMAGE_DIR", defaultImageDir),
		LocalAddr:        readEnv("LOCAL_ADDR", defaultLocalAddr),
	}

	switch cfg.StoreBackend {
	case BackendFirestore, BackendMongo, BackendPostgres, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.NewWindow <= 0 {
		cfg.NewWindow = defaultWindow
	}
	if cfg.SeedConcurrency < 0 {
		cfg.SeedConcurrency = 0
	}
	return cfg, nil
}

// PostgresDSN returns DATABASE_URL if set, otherwise a DSN built from the
// individual DB_* variables.
func (c *Config) PostgresDSN() string {
	if c.PostgresURL != "" {
		return c.PostgresURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
