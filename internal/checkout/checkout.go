// Package checkout turns the current cart into a recorded order.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/techstore-cart/internal/domain"
	"github.com/nikolayk812/techstore-cart/internal/port"
	"go.uber.org/zap"
)

// dateLayout matches JavaScript's Date.prototype.toISOString.
const dateLayout = "2006-01-02T15:04:05.000Z"

// CartSource is the part of the cart store checkout needs.
type CartSource interface {
	Cart() domain.Cart
	Drain(ctx context.Context, fn func(domain.Cart) error) error
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Summary is what the customer confirms before entering contact details.
type Summary struct {
	ItemCount int
	Total     int64
}

type Service struct {
	cart    CartSource
	history port.OrderHistory
	ids     *orderIDs
	clock   Clock
	logger  *zap.Logger
}

type Option func(*Service)

func WithClock(clock Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(cart CartSource, history port.OrderHistory, opts ...Option) *Service {
	s := &Service{
		cart:    cart,
		history: history,
		ids:     &orderIDs{},
		clock:   systemClock{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Begin() (Summary, error) {
	c := s.cart.Cart()
	if c.IsEmpty() {
		return Summary{}, domain.ErrEmptyCart
	}

	return Summary{
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}, nil
}

// Confirm records the order and empties the cart in one step, so an item
// added concurrently either makes it into the order or stays in the cart.
// Nothing changes when the cart is empty or a contact field is blank. Prices
// are the ones captured when the items were added.
func (s *Service) Confirm(ctx context.Context, customer domain.Customer) (domain.Order, error) {
	var order domain.Order

	err := s.cart.Drain(ctx, func(c domain.Cart) error {
		if c.IsEmpty() {
			return domain.ErrEmptyCart
		}

		if missing := customer.Blank(); len(missing) > 0 {
			return &domain.IncompleteCustomerInfoError{Missing: missing}
		}

		now := s.clock.Now()
		placed := domain.Order{
			Items:    c.Items,
			Total:    c.Total(),
			Customer: customer.Trimmed(),
			Date:     now.UTC().Format(dateLayout),
			OrderID:  s.ids.next(now),
		}

		if err := s.history.Append(ctx, placed); err != nil {
			return fmt.Errorf("history.Append: %w", err)
		}

		s.logger.Info("order placed",
			zap.String("order_id", placed.OrderID),
			zap.Int64("total", placed.Total),
			zap.Int("items", c.ItemCount()))

		order = placed
		return nil
	})
	if err != nil && order.OrderID == "" {
		return domain.Order{}, err
	}
	if err != nil {
		// recorded, but the emptied cart could not be written
		return order, fmt.Errorf("cart.Drain: %w", err)
	}

	return order, nil
}
