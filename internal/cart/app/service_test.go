package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

type fakeRepo struct {
	carts map[string][]domain.LineItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{carts: make(map[string][]domain.LineItem)}
}

func (f *fakeRepo) Get(ctx context.Context, userID string) ([]domain.LineItem, error) {
	return f.carts[userID], nil
}

func (f *fakeRepo) Replace(ctx context.Context, userID string, items []domain.LineItem) error {
	f.carts[userID] = items
	return nil
}

func (f *fakeRepo) RemoveItem(ctx context.Context, userID, sku string) error {
	kept := f.carts[userID][:0]
	for _, it := range f.carts[userID] {
		if it.SKU != sku {
			kept = append(kept, it)
		}
	}
	f.carts[userID] = kept
	return nil
}

func (f *fakeRepo) SetQuantity(ctx context.Context, userID, sku string, quantity int) error {
	for i, it := range f.carts[userID] {
		if it.SKU == sku {
			f.carts[userID][i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func lineItem(sku string, price string, qty int) domain.LineItem {
	return domain.LineItem{
		SKU:      sku,
		Name:     "name-" + sku,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
	}
}

func TestGetCart_EmptyForNewUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	items, err := svc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestReplaceCart(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		want := []domain.LineItem{lineItem("A", "10", 2), lineItem("B", "3.25", 1)}

		require.NoError(t, svc.ReplaceCart(ctx, "u1", want))

		got, err := svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.ElementsMatch(t, want, got)
	})

	t.Run("rejects malformed item", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		err := svc.ReplaceCart(ctx, "u1", []domain.LineItem{lineItem("", "10", 1)})
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		err := svc.ReplaceCart(ctx, "u1", []domain.LineItem{lineItem("A", "10", 0)})
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("empty list clears the cart", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		require.NoError(t, svc.ReplaceCart(ctx, "u1", []domain.LineItem{lineItem("A", "10", 1)}))
		require.NoError(t, svc.ReplaceCart(ctx, "u1", []domain.LineItem{}))

		got, err := svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	require.NoError(t, svc.ReplaceCart(ctx, "u1", []domain.LineItem{lineItem("A", "10", 1)}))

	t.Run("absent sku is a no-op", func(t *testing.T) {
		require.NoError(t, svc.RemoveItem(ctx, "u1", "nope"))

		got, err := svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("removes matching sku", func(t *testing.T) {
		require.NoError(t, svc.RemoveItem(ctx, "u1", "A"))

		got, err := svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects quantity below 1", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		assert.ErrorIs(t, svc.SetQuantity(ctx, "u1", "A", 0), ErrInvalidQuantity)
		assert.ErrorIs(t, svc.SetQuantity(ctx, "u1", "A", -1), ErrInvalidQuantity)
	})

	t.Run("unknown sku", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		assert.ErrorIs(t, svc.SetQuantity(ctx, "u1", "A", 2), ErrItemNotFound)
	})

	t.Run("updates in place", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		require.NoError(t, svc.ReplaceCart(ctx, "u1", []domain.LineItem{lineItem("A", "10", 1)}))
		require.NoError(t, svc.SetQuantity(ctx, "u1", "A", 7))

		got, err := svc.GetCart(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 7, got[0].Quantity)
	})
}
