// Package catalog holds the read-only set of products the cart can refer to.
package catalog

import (
	"fmt"

	"github.com/nikolayk812/techstore-cart/internal/domain"
)

type Catalog struct {
	byID  map[int64]domain.Product
	order []int64
}

func New(products ...domain.Product) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[int64]domain.Product, len(products)),
		order: make([]int64, 0, len(products)),
	}

	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product[%d]: id must be positive", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product[%d]: price is negative", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product[%d]: duplicate id", p.ID)
		}

		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}

	return c, nil
}

func (c *Catalog) FindByID(id int64) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns the products in the order they were given to New.
func (c *Catalog) All() []domain.Product {
	products := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		products = append(products, c.byID[id])
	}
	return products
}

func (c *Catalog) Len() int {
	return len(c.order)
}
