package domain

type Product struct {
	ID          int64
	Name        string
	Price       int64
	Category    string
	Image       string
	Description string
}

// Snapshot copies the fields a cart line keeps from the product.
func (p Product) Snapshot(quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Image:     p.Image,
	}
}
