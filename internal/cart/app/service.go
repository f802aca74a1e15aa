package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

var (
	ErrInvalidItem     = errors.New("invalid cart item")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// Service is the server-authoritative cart store. Every operation is scoped
// to one user; carts of different users are fully independent.
type Service struct {
	repo CartRepo
}

func NewService(repo CartRepo) *Service {
	return &Service{repo: repo}
}

// GetCart never fails with not-found: a user without cart rows has an empty
// cart.
func (s *Service) GetCart(ctx context.Context, userID string) ([]domain.LineItem, error) {
	items, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}

// ReplaceCart validates the full list and swaps the stored cart for it.
// This is also how client-side quantity-increment merges land on the server.
func (s *Service) ReplaceCart(ctx context.Context, userID string, items []domain.LineItem) error {
	if err := domain.ValidateItems(items); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return s.repo.Replace(ctx, userID, items)
}

// RemoveItem deletes the line item with the given SKU. An absent SKU is a
// no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, userID, sku string) error {
	if sku == "" {
		return fmt.Errorf("%w: sku is required", ErrInvalidItem)
	}
	return s.repo.RemoveItem(ctx, userID, sku)
}

// SetQuantity updates one line item in place.
func (s *Service) SetQuantity(ctx context.Context, userID, sku string, quantity int) error {
	if sku == "" {
		return fmt.Errorf("%w: sku is required", ErrInvalidItem)
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.repo.SetQuantity(ctx, userID, sku, quantity)
}
