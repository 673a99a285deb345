package domain

import "math"

// LineItem is one catalog product in the cart. Name, Price and Image are
// copied from the product when the line is created and never refreshed.
type LineItem struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

func (i LineItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

type Cart struct {
	Items []LineItem
}

func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount is the sum of quantities, not the number of lines.
func (c Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Find(productID int64) (LineItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// InRange reports whether ItemCount and Total fit their types. It expects
// positive quantities and non-negative prices.
func (c Cart) InRange() bool {
	var count int
	var total int64

	for _, item := range c.Items {
		if item.Quantity > math.MaxInt-count {
			return false
		}
		count += item.Quantity

		if item.Price > 0 && int64(item.Quantity) > math.MaxInt64/item.Price {
			return false
		}
		line := item.LineTotal()

		if line > math.MaxInt64-total {
			return false
		}
		total += line
	}

	return true
}
