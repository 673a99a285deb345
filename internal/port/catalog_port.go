package port

import "github.com/nikolayk812/techstore-cart/internal/domain"

type Catalog interface {
	FindByID(id int64) (domain.Product, bool)
}
