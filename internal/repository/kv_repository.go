package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/techstore-cart/internal/db"
	"github.com/nikolayk812/techstore-cart/internal/port"
)

type postgresKV struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) port.KeyValueStore {
	return &postgresKV{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewPostgresWithTx(tx pgx.Tx) port.KeyValueStore {
	return &postgresKV{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *postgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	value, found, err := getEntry(ctx, r.q, key)
	if err != nil {
		return "", false, err
	}

	return value, found, nil
}

func (r *postgresKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	err := r.q.PutEntry(ctx, db.PutEntryParams{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("q.PutEntry: %w", err)
	}

	return nil
}

func (r *postgresKV) Update(ctx context.Context, key string, fn func(string, bool) (string, error)) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		// the row may not exist yet, so lock the key rather than the row
		if err := q.LockEntry(ctx, key); err != nil {
			return fmt.Errorf("q.LockEntry: %w", err)
		}

		current, found, err := getEntry(ctx, q, key)
		if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		err = q.PutEntry(ctx, db.PutEntryParams{
			Key:   key,
			Value: next,
		})
		if err != nil {
			return fmt.Errorf("q.PutEntry: %w", err)
		}

		return nil
	})
}

func getEntry(ctx context.Context, q *db.Queries, key string) (string, bool, error) {
	value, err := q.GetEntry(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetEntry: %w", err)
	}

	return value, true, nil
}
