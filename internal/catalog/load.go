package catalog

import (
	"fmt"
	"os"

	"github.com/nikolayk812/techstore-cart/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Products []productEntry `yaml:"products"`
}

type productEntry struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Price       price  `yaml:"price"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

// price accepts both `89990` and `"89990"`.
type price struct {
	decimal.Decimal
}

func (p *price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a scalar", node.Line)
	}

	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: price[%s] is not a number: %w", node.Line, node.Value, err)
	}

	p.Decimal = d
	return nil
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog[%s]: %w", path, err)
	}

	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}

	products := make([]domain.Product, 0, len(file.Products))
	for _, entry := range file.Products {
		p, err := mapEntryToDomain(entry)
		if err != nil {
			return nil, fmt.Errorf("mapEntryToDomain: %w", err)
		}
		products = append(products, p)
	}

	return New(products...)
}

func mapEntryToDomain(entry productEntry) (domain.Product, error) {
	amount := entry.Price.Decimal

	if !amount.IsInteger() {
		return domain.Product{}, fmt.Errorf("product[%d]: price[%s] is not a whole number", entry.ID, amount)
	}
	if amount.IsNegative() {
		return domain.Product{}, fmt.Errorf("product[%d]: price[%s] is negative", entry.ID, amount)
	}
	if !amount.BigInt().IsInt64() {
		return domain.Product{}, fmt.Errorf("product[%d]: price[%s] is out of range", entry.ID, amount)
	}

	return domain.Product{
		ID:          entry.ID,
		Name:        entry.Name,
		Price:       amount.IntPart(),
		Category:    entry.Category,
		Image:       entry.Image,
		Description: entry.Description,
	}, nil
}
