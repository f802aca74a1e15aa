package app

import (
	"context"

	"github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

type CartRepo interface {
	Get(ctx context.Context, userID string) ([]domain.LineItem, error)
	Replace(ctx context.Context, userID string, items []domain.LineItem) error
	RemoveItem(ctx context.Context, userID, sku string) error
	SetQuantity(ctx context.Context, userID, sku string, quantity int) error
}
