package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nikolayk812/techstore-cart/internal/cart"
	"github.com/nikolayk812/techstore-cart/internal/catalog"
	"github.com/nikolayk812/techstore-cart/internal/domain"
	"github.com/nikolayk812/techstore-cart/internal/port"
	"github.com/nikolayk812/techstore-cart/internal/repository"
	"github.com/stretchr/testify/require"
)

var errStorageDown = errors.New("storage down")

// flakyKV wraps a memory store and fails on demand.
type flakyKV struct {
	port.KeyValueStore

	mu       sync.Mutex
	failSet  bool
	failGet  bool
	setCalls int
}

func newFlakyKV() *flakyKV {
	return &flakyKV{KeyValueStore: repository.NewMemory()}
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()

	if fail {
		return "", false, errStorageDown
	}
	return f.KeyValueStore.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.setCalls++
	fail := f.failSet
	f.mu.Unlock()

	if fail {
		return errStorageDown
	}
	return f.KeyValueStore.Set(ctx, key, value)
}

func (f *flakyKV) SetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

// mutableCatalog lets a test change a product after it was put in the cart.
type mutableCatalog struct {
	products map[int64]domain.Product
}

func (c *mutableCatalog) FindByID(id int64) (domain.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

func newStore(t *testing.T, kv port.KeyValueStore, opts ...cart.Option) *cart.Store {
	t.Helper()

	s, err := cart.New(t.Context(), kv, catalog.Default(), opts...)
	require.NoError(t, err)
	return s
}

func persistedItems(t *testing.T, kv port.KeyValueStore) []domain.LineItem {
	t.Helper()

	reloaded, err := cart.New(t.Context(), kv, catalog.Default())
	require.NoError(t, err)
	return reloaded.Items()
}
