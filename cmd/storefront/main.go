package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/techstore-cart/internal/cart"
	"github.com/nikolayk812/techstore-cart/internal/catalog"
	"github.com/nikolayk812/techstore-cart/internal/checkout"
	"github.com/nikolayk812/techstore-cart/internal/config"
	"github.com/nikolayk812/techstore-cart/internal/console"
	"github.com/nikolayk812/techstore-cart/internal/orderhistory"
	"github.com/nikolayk812/techstore-cart/internal/port"
	"github.com/nikolayk812/techstore-cart/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("newLogger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	products, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loadCatalog: %w", err)
	}

	kv, closeKV, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer closeKV()

	logger.Info("storage ready", zap.String("backend", string(cfg.Backend)))
	if !cfg.Durable() {
		logger.Warn("cart and orders are kept in memory and lost on exit; set STORAGE_BACKEND to postgres, redis or mongo to keep them")
		fmt.Println("Memory storage: the cart and orders are lost on exit (set STORAGE_BACKEND to keep them).")
	}

	store, err := cart.New(ctx, kv, products,
		cart.WithKey(cfg.CartKey),
		cart.WithLogger(logger.Named("cart")))
	if err != nil {
		return fmt.Errorf("cart.New: %w", err)
	}

	history := orderhistory.New(kv,
		orderhistory.WithKey(cfg.OrdersKey),
		orderhistory.WithLogger(logger.Named("orders")))

	checkoutService := checkout.New(store, history, checkout.WithLogger(logger.Named("checkout")))

	c := console.New(store, checkoutService, history, products, os.Stdout,
		console.WithLogger(logger.Named("console")))

	// unblock the pending stdin read on interrupt
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	if err := c.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		return fmt.Errorf("console.Run: %w", err)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("zap.ParseAtomicLevel: %w", err)
		}
		cfg.Level = lvl
	}
	// stdout belongs to the console
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

func openStorage(ctx context.Context, cfg config.Config) (port.KeyValueStore, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		return repository.NewPostgres(pool), pool.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		return repository.NewRedis(client), func() { _ = client.Close() }, nil

	case config.BackendMongo:
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.ConnectMongoDB: %w", err)
		}
		return repository.NewMongo(db), func() { _ = db.Client().Disconnect(context.Background()) }, nil

	default:
		return repository.NewMemory(), func() {}, nil
	}
}
