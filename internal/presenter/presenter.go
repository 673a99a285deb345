// Package presenter renders the cart as plain text for the console.
package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikolayk812/techstore-cart/internal/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Russian)

// FormatPrice groups digits the Russian way and appends the currency sign,
// e.g. 89 990 ₽.
func FormatPrice(m Money) string {
	amount := printer.Sprintf("%d", m.Amount.IntPart())

	if m.Currency == currency.RUB {
		return amount + " ₽"
	}
	return amount + " " + m.Currency.String()
}

func rubles(amount int64) string {
	return FormatPrice(Rubles(amount))
}

// Badge is the item counter next to the cart link; hidden when empty.
func Badge(itemCount int) string {
	if itemCount == 0 {
		return ""
	}
	return fmt.Sprintf("[%d]", itemCount)
}

func RenderCart(w io.Writer, c domain.Cart) error {
	var b strings.Builder

	if c.IsEmpty() {
		b.WriteString("Cart is empty\n")
		b.WriteString("Add products from the catalog\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, item := range c.Items {
		fmt.Fprintf(&b, "#%d %s  %s x %d = %s\n",
			item.ProductID, item.Name, rubles(item.Price), item.Quantity, rubles(item.LineTotal()))
	}
	fmt.Fprintf(&b, "Total: %s\n", rubles(c.Total()))

	_, err := io.WriteString(w, b.String())
	return err
}

func RenderCatalog(w io.Writer, products []domain.Product) error {
	var b strings.Builder

	for _, p := range products {
		fmt.Fprintf(&b, "#%d %s (%s)  %s\n", p.ID, p.Name, p.Category, rubles(p.Price))
		if p.Description != "" {
			fmt.Fprintf(&b, "    %s\n", p.Description)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func RenderOrder(w io.Writer, o domain.Order) error {
	_, err := fmt.Fprintf(w, "%s  %s  %s  %s\n", o.OrderID, o.Date, o.Customer.Name, rubles(o.Total))
	return err
}
