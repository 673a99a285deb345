// Package orderhistory appends completed orders to a JSON array kept in the
// key-value store. The log only grows.
package orderhistory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/techstore-cart/internal/domain"
	"github.com/nikolayk812/techstore-cart/internal/port"
	"go.uber.org/zap"
)

const DefaultKey = "techstore_orders"

type Log struct {
	kv     port.KeyValueStore
	key    string
	logger *zap.Logger
}

type Option func(*Log)

func WithKey(key string) Option {
	return func(l *Log) {
		l.key = key
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

func New(kv port.KeyValueStore, opts ...Option) *Log {
	l := &Log{
		kv:     kv,
		key:    DefaultKey,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Log) Append(ctx context.Context, order domain.Order) error {
	err := l.kv.Update(ctx, l.key, func(current string, found bool) (string, error) {
		var orders []domain.Order
		if found {
			orders = l.decode(current)
		}

		orders = append(orders, order)

		data, err := json.Marshal(orders)
		if err != nil {
			return "", fmt.Errorf("json.Marshal: %w", err)
		}
		return string(data), nil
	})
	if err != nil {
		return fmt.Errorf("kv.Update: %w", err)
	}

	return nil
}

// List returns the recorded orders, oldest first.
func (l *Log) List(ctx context.Context) ([]domain.Order, error) {
	raw, found, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("kv.Get: %w", err)
	}
	if !found {
		return nil, nil
	}

	return l.decode(raw), nil
}

// decode treats an unreadable history as empty; the next Append overwrites it.
func (l *Log) decode(raw string) []domain.Order {
	var orders []domain.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		l.logger.Warn("discarding persisted order history",
			zap.String("key", l.key),
			zap.NamedError("reason", domain.ErrMalformedState),
			zap.Error(err))
		return nil
	}
	return orders
}
