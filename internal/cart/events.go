package cart

import (
	"slices"

	"github.com/nikolayk812/techstore-cart/internal/domain"
)

type EventKind int

const (
	ItemAdded EventKind = iota + 1
	ItemRemoved
	QuantityChanged
	Cleared
)

func (k EventKind) String() string {
	switch k {
	case ItemAdded:
		return "item_added"
	case ItemRemoved:
		return "item_removed"
	case QuantityChanged:
		return "quantity_changed"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is delivered after a mutation has been committed and persisted.
// Cart is a snapshot of the state right after that mutation.
type Event struct {
	Kind      EventKind
	ProductID int64
	Cart      domain.Cart
}

type Listener func(Event)

// Subscribe registers l for change events. Listeners run synchronously on
// the goroutine that made the change, outside the store lock, so they may
// read the store.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(event Event) {
	s.listenersMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.listenersMu.Unlock()

	slices.Sort(ids)

	for _, id := range ids {
		s.listenersMu.Lock()
		l, ok := s.listeners[id]
		s.listenersMu.Unlock()

		if ok {
			l(event)
		}
	}
}
