package cart

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/nikolayk812/techstore-cart/internal/domain"
	"go.uber.org/zap"
)

// encodeItems writes the persisted form: a JSON array, never null.
func encodeItems(items []domain.LineItem) (string, error) {
	if items == nil {
		items = []domain.LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(data), nil
}

func decodeItems(raw string) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return items, nil
}

// normalize restores the cart invariants on data read from storage: lines
// with quantity below one are dropped and repeated products are merged into
// the first line.
func normalize(items []domain.LineItem, logger *zap.Logger) []domain.LineItem {
	var result []domain.LineItem
	seen := make(map[int64]int, len(items))

	for _, item := range items {
		if item.Quantity < 1 {
			logger.Warn("dropping persisted line with non-positive quantity",
				zap.Int64("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity))
			continue
		}

		if i, dup := seen[item.ProductID]; dup {
			if item.Quantity > math.MaxInt-result[i].Quantity {
				logger.Warn("dropping duplicate persisted line that overflows quantity",
					zap.Int64("product_id", item.ProductID))
				continue
			}
			logger.Warn("merging duplicate persisted line",
				zap.Int64("product_id", item.ProductID))
			result[i].Quantity += item.Quantity
			continue
		}

		seen[item.ProductID] = len(result)
		result = append(result, item)
	}

	return result
}
