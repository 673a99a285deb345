// Package cart owns the shopping cart's line items: it applies mutations,
// keeps the persisted copy in step with memory and tells listeners about
// every committed change.
package cart

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/nikolayk812/techstore-cart/internal/domain"
	"github.com/nikolayk812/techstore-cart/internal/port"
	"go.uber.org/zap"
)

const DefaultKey = "techstore_cart"

type Store struct {
	kv      port.KeyValueStore
	catalog port.Catalog
	key     string
	logger  *zap.Logger

	mu    sync.RWMutex
	items []domain.LineItem

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New restores the cart persisted under the store key. A missing or
// unreadable value yields an empty cart; only adapter failures are returned.
func New(ctx context.Context, kv port.KeyValueStore, catalog port.Catalog, opts ...Option) (*Store, error) {
	s := &Store{
		kv:        kv,
		catalog:   catalog,
		key:       DefaultKey,
		logger:    zap.NewNop(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, found, err := kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("kv.Get: %w", err)
	}
	if !found {
		return s, nil
	}

	items, err := decodeItems(raw)
	if err != nil {
		s.logger.Warn("discarding persisted cart",
			zap.String("key", s.key),
			zap.NamedError("reason", domain.ErrMalformedState),
			zap.Error(err))
		return s, nil
	}

	items = normalize(items, s.logger)
	if !(domain.Cart{Items: items}).InRange() {
		s.logger.Warn("discarding persisted cart",
			zap.String("key", s.key),
			zap.NamedError("reason", domain.ErrMalformedState),
			zap.Error(domain.ErrQuantityOverflow))
		return s, nil
	}

	s.items = items
	return s, nil
}

// AddItem puts quantity units of the product into the cart, merging with an
// existing line for the same product.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	product, ok := s.catalog.FindByID(productID)
	if !ok {
		return fmt.Errorf("product[%d]: %w", productID, domain.ErrProductNotFound)
	}

	return s.mutate(ctx, productID, func(items []domain.LineItem) ([]domain.LineItem, EventKind, bool, error) {
		i := indexOf(items, productID)
		if i < 0 {
			return append(items, product.Snapshot(quantity)), ItemAdded, true, nil
		}

		if quantity > math.MaxInt-items[i].Quantity {
			return nil, 0, false, fmt.Errorf("product[%d]: %w", productID, domain.ErrQuantityOverflow)
		}
		items[i].Quantity += quantity
		return items, ItemAdded, true, nil
	})
}

func (s *Store) AddOne(ctx context.Context, productID int64) error {
	return s.AddItem(ctx, productID, 1)
}

// RemoveItem drops the product's line. Removing an absent product is not an
// error; the cart is still persisted and listeners still fire.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	return s.mutate(ctx, productID, func(items []domain.LineItem) ([]domain.LineItem, EventKind, bool, error) {
		return removeLine(items, productID), ItemRemoved, true, nil
	})
}

// UpdateQuantity shifts the product's quantity by delta. A result below one
// removes the line. Unknown products are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, delta int) error {
	return s.mutate(ctx, productID, func(items []domain.LineItem) ([]domain.LineItem, EventKind, bool, error) {
		i := indexOf(items, productID)
		if i < 0 {
			return items, 0, false, nil
		}

		if delta > 0 && items[i].Quantity > math.MaxInt-delta {
			return nil, 0, false, fmt.Errorf("product[%d]: %w", productID, domain.ErrQuantityOverflow)
		}

		newQuantity := items[i].Quantity + delta
		if newQuantity < 1 {
			return removeLine(items, productID), ItemRemoved, true, nil
		}

		items[i].Quantity = newQuantity
		return items, QuantityChanged, true, nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, 0, func([]domain.LineItem) ([]domain.LineItem, EventKind, bool, error) {
		return nil, Cleared, true, nil
	})
}

// Drain hands the current cart to fn and empties the cart once fn returns
// nil. The store stays locked throughout, so no mutation lands between the
// read and the clear. An error from fn is returned as is and nothing changes.
// fn must not call back into the store.
func (s *Store) Drain(ctx context.Context, fn func(domain.Cart) error) error {
	return s.mutate(ctx, 0, func(items []domain.LineItem) ([]domain.LineItem, EventKind, bool, error) {
		if err := fn(domain.Cart{Items: slices.Clone(items)}); err != nil {
			return nil, 0, false, err
		}
		return nil, Cleared, true, nil
	})
}

func (s *Store) Total() int64 {
	return s.Cart().Total()
}

func (s *Store) ItemCount() int {
	return s.Cart().ItemCount()
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

func (s *Store) Cart() domain.Cart {
	return domain.Cart{Items: s.Items()}
}

// change edits a private copy of the items. It reports false when there is
// nothing to write; an error aborts the mutation.
type change func(items []domain.LineItem) ([]domain.LineItem, EventKind, bool, error)

// mutate persists the changed copy first and swaps it in only after the
// write succeeded, so memory and storage never disagree.
func (s *Store) mutate(ctx context.Context, productID int64, fn change) error {
	s.mu.Lock()

	next, kind, changed, err := fn(slices.Clone(s.items))
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}

	if !(domain.Cart{Items: next}).InRange() {
		s.mu.Unlock()
		return fmt.Errorf("product[%d]: %w", productID, domain.ErrQuantityOverflow)
	}

	raw, err := encodeItems(next)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encodeItems: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("kv.Set: %w", err)
	}

	s.items = next
	s.mu.Unlock()

	s.notify(Event{
		Kind:      kind,
		ProductID: productID,
		Cart:      domain.Cart{Items: slices.Clone(next)},
	})

	return nil
}

func indexOf(items []domain.LineItem, productID int64) int {
	return slices.IndexFunc(items, func(item domain.LineItem) bool {
		return item.ProductID == productID
	})
}

func removeLine(items []domain.LineItem, productID int64) []domain.LineItem {
	return slices.DeleteFunc(items, func(item domain.LineItem) bool {
		return item.ProductID == productID
	})
}
