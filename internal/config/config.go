package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/techstore-cart/internal/cart"
	"github.com/nikolayk812/techstore-cart/internal/orderhistory"
)

type Backend string

const (
	// BackendMemory keeps state only until the process exits; meant for
	// trying the storefront out.
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendMongo    Backend = "mongo"
)

type Config struct {
	Backend Backend // where the cart and the order history live

	PostgresDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI string
	MongoDB  string

	CartKey   string
	OrdersKey string

	CatalogPath string // empty means the built-in catalog
	LogLevel    string // debug enables the development logger
}

// Load reads the environment, after seeding it from a .env file in the
// working directory when there is one. Variables already set win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	redisDB, err := atoiOr("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Backend: Backend(getEnv("STORAGE_BACKEND", string(BackendMemory))),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "techstore"),

		CartKey:   getEnv("CART_KEY", cart.DefaultKey),
		OrdersKey: getEnv("ORDERS_KEY", orderhistory.DefaultKey),

		CatalogPath: os.Getenv("CATALOG_PATH"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Durable reports whether the cart and the order history outlive the process.
func (c Config) Durable() bool {
	return c.Backend != BackendMemory
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND[%s] is not supported", c.Backend)
	}

	if c.CartKey == c.OrdersKey {
		return fmt.Errorf("CART_KEY and ORDERS_KEY must differ")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func atoiOr(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
