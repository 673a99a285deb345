package port

import "context"

// KeyValueStore is the durable string-keyed store the cart and the order
// history are persisted through.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Update atomically replaces the value under key with the result of fn.
	// If fn returns an error nothing is written.
	Update(ctx context.Context, key string, fn func(current string, found bool) (string, error)) error
}
