package port

import (
	"context"

	"github.com/nikolayk812/techstore-cart/internal/domain"
)

type OrderHistory interface {
	Append(ctx context.Context, order domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}
