package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/techstore-cart/internal/port"
	"github.com/redis/go-redis/v9"
)

const redisUpdateAttempts = 10

type redisKV struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) port.KeyValueStore {
	return &redisKV{
		client: client,
	}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

// Set stores the value without expiry: the cart outlives any session.
func (r *redisKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

// Update is an optimistic WATCH/MULTI transaction, retried when another
// writer touches the key in between.
func (r *redisKV) Update(ctx context.Context, key string, fn func(string, bool) (string, error)) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		found := true
		if errors.Is(err, redis.Nil) {
			found, err = false, nil
		}
		if err != nil {
			return fmt.Errorf("tx.Get: %w", err)
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for range redisUpdateAttempts {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("client.Watch: %w", err)
		}
		return nil
	}

	return fmt.Errorf("key[%s] update gave up after %d attempts: %w", key, redisUpdateAttempts, redis.TxFailedErr)
}
