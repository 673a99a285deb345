// Package console is a line-oriented front end for the cart: it reads one
// command per line, drives the cart store and checkout, and prints
// notifications plus the refreshed badge after every change.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nikolayk812/techstore-cart/internal/cart"
	"github.com/nikolayk812/techstore-cart/internal/checkout"
	"github.com/nikolayk812/techstore-cart/internal/domain"
	"github.com/nikolayk812/techstore-cart/internal/port"
	"github.com/nikolayk812/techstore-cart/internal/presenter"
	"go.uber.org/zap"
)

var errQuit = errors.New("quit")

type Products interface {
	port.Catalog
	All() []domain.Product
}

type Console struct {
	store    *cart.Store
	checkout *checkout.Service
	history  port.OrderHistory
	products Products
	out      io.Writer
	logger   *zap.Logger
}

type Option func(*Console)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

func New(store *cart.Store, checkoutService *checkout.Service, history port.OrderHistory, products Products, out io.Writer, opts ...Option) *Console {
	c := &Console{
		store:    store,
		checkout: checkoutService,
		history:  history,
		products: products,
		out:      out,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes commands from in until EOF, "quit" or ctx cancellation.
// Failed commands are reported and do not stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	unsubscribe := c.store.Subscribe(c.onChange)
	defer unsubscribe()

	c.printf("TechStore. Type \"help\" for commands.\n")
	c.printBadge(c.store.ItemCount())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.Execute(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			c.logger.Error("command failed", zap.String("line", scanner.Text()), zap.Error(err))
			c.printf("Something went wrong, please try again\n")
		}
	}

	return scanner.Err()
}

// Execute runs a single command line. Mistakes the user can fix are printed
// as notifications; only storage failures are returned.
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "help":
		c.printf("%s", helpText)
		return nil
	case "catalog":
		return presenter.RenderCatalog(c.out, c.products.All())
	case "cart", "show":
		return presenter.RenderCart(c.out, c.store.Cart())
	case "add":
		return c.add(ctx, args)
	case "inc":
		return c.shift(ctx, args, 1)
	case "dec":
		return c.shift(ctx, args, -1)
	case "remove":
		return c.remove(ctx, args)
	case "clear":
		return c.clear(ctx)
	case "checkout":
		return c.beginCheckout()
	case "confirm":
		return c.confirm(ctx, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0])))
	case "orders":
		return c.orders(ctx)
	case "quit", "exit":
		return errQuit
	default:
		c.printf("Unknown command %q, type \"help\"\n", name)
		return nil
	}
}

const helpText = `Commands:
  catalog                          list products
  cart                             show the cart
  add <id> [quantity]              add a product
  inc <id> / dec <id>              change quantity by one
  remove <id>                      remove a product
  clear                            empty the cart
  checkout                         show the order summary
  confirm <name>; <phone>; <email> place the order
  orders                           list placed orders
  quit
`

func (c *Console) add(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		c.printf("Usage: add <id> [quantity]\n")
		return nil
	}

	id, ok := c.parseID(args[0])
	if !ok {
		return nil
	}

	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			c.printf("Quantity must be a number\n")
			return nil
		}
		quantity = q
	}

	err := c.store.AddItem(ctx, id, quantity)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.printf("Product #%d not found\n", id)
		return nil
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.printf("Quantity must be positive\n")
		return nil
	case errors.Is(err, domain.ErrQuantityOverflow):
		c.printf("Quantity is too large\n")
		return nil
	case err != nil:
		return fmt.Errorf("store.AddItem: %w", err)
	}

	product, _ := c.products.FindByID(id)
	c.printf("%q added to cart!\n", product.Name)
	return nil
}

func (c *Console) shift(ctx context.Context, args []string, delta int) error {
	if len(args) != 1 {
		c.printf("Usage: inc <id> / dec <id>\n")
		return nil
	}

	id, ok := c.parseID(args[0])
	if !ok {
		return nil
	}

	err := c.store.UpdateQuantity(ctx, id, delta)
	if errors.Is(err, domain.ErrQuantityOverflow) {
		c.printf("Quantity is too large\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("store.UpdateQuantity: %w", err)
	}
	return nil
}

func (c *Console) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		c.printf("Usage: remove <id>\n")
		return nil
	}

	id, ok := c.parseID(args[0])
	if !ok {
		return nil
	}

	item, inCart := c.store.Cart().Find(id)

	if err := c.store.RemoveItem(ctx, id); err != nil {
		return fmt.Errorf("store.RemoveItem: %w", err)
	}

	if inCart {
		c.printf("%q removed from cart\n", item.Name)
	}
	return nil
}

func (c *Console) clear(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("store.Clear: %w", err)
	}

	c.printf("Cart cleared\n")
	return nil
}

func (c *Console) beginCheckout() error {
	summary, err := c.checkout.Begin()
	if errors.Is(err, domain.ErrEmptyCart) {
		c.printf("Cart is empty! Add products before placing an order.\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("checkout.Begin: %w", err)
	}

	c.printf("Items: %d, total: %s\n", summary.ItemCount, presenter.FormatPrice(presenter.Rubles(summary.Total)))
	c.printf("To place the order type: confirm <name>; <phone>; <email>\n")
	return nil
}

func (c *Console) confirm(ctx context.Context, raw string) error {
	order, err := c.checkout.Confirm(ctx, parseCustomer(raw))

	var incomplete *domain.IncompleteCustomerInfoError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.printf("Cart is empty! Add products before placing an order.\n")
		return nil
	case errors.As(err, &incomplete):
		c.printf("Fill in all fields! Missing: %s\n", strings.Join(incomplete.Missing, ", "))
		return nil
	case err != nil && order.OrderID == "":
		return fmt.Errorf("checkout.Confirm: %w", err)
	case err != nil:
		// the order is recorded, only clearing the cart failed
		c.printf("Order #%s placed! A manager will contact you.\n", order.OrderID)
		return fmt.Errorf("checkout.Confirm: %w", err)
	}

	c.printf("Order #%s placed! A manager will contact you.\n", order.OrderID)
	return nil
}

func (c *Console) orders(ctx context.Context) error {
	orders, err := c.history.List(ctx)
	if err != nil {
		return fmt.Errorf("history.List: %w", err)
	}

	if len(orders) == 0 {
		c.printf("No orders yet\n")
		return nil
	}

	for _, o := range orders {
		if err := presenter.RenderOrder(c.out, o); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) onChange(event cart.Event) {
	c.logger.Debug("cart changed",
		zap.Stringer("kind", event.Kind),
		zap.Int64("product_id", event.ProductID))

	c.printBadge(event.Cart.ItemCount())
}

func (c *Console) printBadge(itemCount int) {
	badge := presenter.Badge(itemCount)
	if badge == "" {
		c.printf("Cart\n")
		return
	}
	c.printf("Cart %s\n", badge)
}

func (c *Console) parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		c.printf("Product id must be a number\n")
		return 0, false
	}
	return id, true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// parseCustomer splits "name; phone; email". Missing parts stay blank and
// are reported by checkout.
func parseCustomer(raw string) domain.Customer {
	parts := strings.SplitN(raw, ";", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	return domain.Customer{
		Name:  parts[0],
		Phone: parts[1],
		Email: parts[2],
	}
}
