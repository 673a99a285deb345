package cart_test

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/techstore-cart/internal/cart"
	"github.com/nikolayk812/techstore-cart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// limitsCatalog has a free product, so quantities can grow without the
// total overflowing first.
func limitsCatalog() *mutableCatalog {
	return &mutableCatalog{products: map[int64]domain.Product{
		1:  {ID: 1, Name: "iPhone 15 Pro", Price: 89990},
		50: {ID: 50, Name: "Sticker", Price: 0},
		51: {ID: 51, Name: "Gift card", Price: 0},
		60: {ID: 60, Name: "Half of the range", Price: math.MaxInt64/2 + 1},
		61: {ID: 61, Name: "Other half", Price: math.MaxInt64/2 + 1},
	}}
}

func TestQuantityOverflow(t *testing.T) {
	type step func(s *cart.Store) error

	tests := []struct {
		name    string
		setup   []step
		op      step
		wantQty map[int64]int
	}{
		{
			name: "add on top of max quantity",
			setup: []step{
				func(s *cart.Store) error { return s.AddItem(t.Context(), 50, math.MaxInt) },
			},
			op:      func(s *cart.Store) error { return s.AddOne(t.Context(), 50) },
			wantQty: map[int64]int{50: math.MaxInt},
		},
		{
			name: "increment past max quantity",
			setup: []step{
				func(s *cart.Store) error { return s.AddItem(t.Context(), 50, 5) },
			},
			op:      func(s *cart.Store) error { return s.UpdateQuantity(t.Context(), 50, math.MaxInt) },
			wantQty: map[int64]int{50: 5},
		},
		{
			name:    "line total out of range",
			op:      func(s *cart.Store) error { return s.AddItem(t.Context(), 1, math.MaxInt) },
			wantQty: map[int64]int{},
		},
		{
			name: "increment pushes line total out of range",
			setup: []step{
				func(s *cart.Store) error { return s.AddOne(t.Context(), 1) },
			},
			op:      func(s *cart.Store) error { return s.UpdateQuantity(t.Context(), 1, math.MaxInt-1) },
			wantQty: map[int64]int{1: 1},
		},
		{
			name: "item count across lines out of range",
			setup: []step{
				func(s *cart.Store) error { return s.AddItem(t.Context(), 50, math.MaxInt) },
			},
			op:      func(s *cart.Store) error { return s.AddOne(t.Context(), 51) },
			wantQty: map[int64]int{50: math.MaxInt},
		},
		{
			name: "expensive line doubled out of range",
			setup: []step{
				func(s *cart.Store) error { return s.AddOne(t.Context(), 60) },
			},
			op:      func(s *cart.Store) error { return s.AddOne(t.Context(), 60) },
			wantQty: map[int64]int{60: 1},
		},
		{
			name: "cart total across lines out of range",
			setup: []step{
				func(s *cart.Store) error { return s.AddOne(t.Context(), 60) },
			},
			op:      func(s *cart.Store) error { return s.AddOne(t.Context(), 61) },
			wantQty: map[int64]int{60: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFlakyKV()
			s, err := cart.New(t.Context(), kv, limitsCatalog())
			require.NoError(t, err)

			for _, setup := range tt.setup {
				require.NoError(t, setup(s))
			}
			writesBefore := kv.SetCalls()
			before := s.Items()

			var events []cart.Event
			s.Subscribe(func(e cart.Event) { events = append(events, e) })

			err = tt.op(s)
			require.ErrorIs(t, err, domain.ErrQuantityOverflow)

			assert.Equal(t, tt.wantQty, quantities(s.Items()))
			assert.Empty(t, cmp.Diff(before, s.Items(), cmpopts.EquateEmpty()))
			assert.Equal(t, writesBefore, kv.SetCalls())
			assert.Empty(t, events)
			assert.GreaterOrEqual(t, s.ItemCount(), 0)
			assert.GreaterOrEqual(t, s.Total(), int64(0))
		})
	}
}

func TestInvariants_ExtremeValues(t *testing.T) {
	ctx := t.Context()
	kv := newFlakyKV()
	products := limitsCatalog()

	s, err := cart.New(ctx, kv, products)
	require.NoError(t, err)

	ids := []int64{1, 50, 51, 60, 61, 99}
	extremes := []int{math.MinInt, -1, 0, 1, math.MaxInt / 2, math.MaxInt - 1, math.MaxInt}

	for range 500 {
		id := ids[gofakeit.IntRange(0, len(ids)-1)]
		n := extremes[gofakeit.IntRange(0, len(extremes)-1)]

		switch gofakeit.IntRange(0, 3) {
		case 0:
			_ = s.AddItem(ctx, id, n)
		case 1:
			err := s.UpdateQuantity(ctx, id, n)
			if err != nil {
				require.ErrorIs(t, err, domain.ErrQuantityOverflow)
			}
		case 2:
			require.NoError(t, s.RemoveItem(ctx, id))
		case 3:
			if gofakeit.Number(0, 9) == 0 {
				require.NoError(t, s.Clear(ctx))
			}
		}

		items := s.Items()
		for _, item := range items {
			require.GreaterOrEqual(t, item.Quantity, 1)
		}
		require.True(t, domain.Cart{Items: items}.InRange())
		require.GreaterOrEqual(t, s.ItemCount(), 0)
		require.GreaterOrEqual(t, s.Total(), int64(0))

		reloaded, err := cart.New(ctx, kv, products)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(items, reloaded.Items(), cmpopts.EquateEmpty()))
	}
}
