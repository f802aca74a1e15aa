package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/dwikikusuma/shopping-hub/internal/cart/domain"
	"github.com/dwikikusuma/shopping-hub/internal/order/domain"
)

// fakeRepo keeps carts and ledgers in memory and mimics the transactional
// contract of the postgres repo: place-from-cart either appends an order
// and clears the cart, or does neither.
type fakeRepo struct {
	carts    map[string][]cartdomain.LineItem
	orders   map[string][]domain.Order
	placeErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		carts:  make(map[string][]cartdomain.LineItem),
		orders: make(map[string][]domain.Order),
	}
}

func (f *fakeRepo) PlaceFromCart(ctx context.Context, userID, orderID string, placedAt time.Time) (domain.Order, error) {
	if f.placeErr != nil {
		return domain.Order{}, f.placeErr
	}
	cart := f.carts[userID]
	if len(cart) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	snapshot := make([]cartdomain.LineItem, len(cart))
	copy(snapshot, cart)

	order := domain.Order{ID: orderID, UserID: userID, PlacedAt: placedAt, Items: snapshot}
	f.orders[userID] = append([]domain.Order{order}, f.orders[userID]...)
	f.carts[userID] = nil
	return order, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return f.orders[userID], nil
}

type fakeIdem struct {
	reserved map[string]string // token key -> order id ("" while in flight)
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{reserved: make(map[string]string)}
}

func (f *fakeIdem) key(userID, token string) string { return userID + ":" + token }

func (f *fakeIdem) Reserve(ctx context.Context, userID, token string) (bool, error) {
	if _, ok := f.reserved[f.key(userID, token)]; ok {
		return false, nil
	}
	f.reserved[f.key(userID, token)] = ""
	return true, nil
}

func (f *fakeIdem) Release(ctx context.Context, userID, token string) error {
	delete(f.reserved, f.key(userID, token))
	return nil
}

func (f *fakeIdem) RecordOrder(ctx context.Context, userID, token, orderID string) error {
	f.reserved[f.key(userID, token)] = orderID
	return nil
}

func (f *fakeIdem) OrderID(ctx context.Context, userID, token string) (string, error) {
	return f.reserved[f.key(userID, token)], nil
}

func lineItem(sku, price string, qty int) cartdomain.LineItem {
	return cartdomain.LineItem{
		SKU:      sku,
		Name:     "name-" + sku,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
	}
}

func TestSubmitOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the cart and clears it", func(t *testing.T) {
		repo := newFakeRepo()
		repo.carts["u1"] = []cartdomain.LineItem{lineItem("A", "10", 2)}
		svc := NewService(repo, newFakeIdem())

		receipt, err := svc.SubmitOrder(ctx, "u1", "tok-1")
		require.NoError(t, err)
		assert.NotEmpty(t, receipt.OrderID)
		assert.False(t, receipt.Replayed)

		orders, err := svc.ListOrders(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, "A", orders[0].Items[0].SKU)
		assert.Equal(t, 2, orders[0].Items[0].Quantity)
		assert.True(t, orders[0].Items[0].Price.Equal(decimal.NewFromInt(10)))

		assert.Empty(t, repo.carts["u1"], "cart must be cleared")
	})

	t.Run("empty cart is refused and the ledger is untouched", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, newFakeIdem())

		_, err := svc.SubmitOrder(ctx, "u1", "tok-1")
		assert.ErrorIs(t, err, ErrEmptyCart)

		orders, err := svc.ListOrders(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("missing token is rejected before any side effect", func(t *testing.T) {
		repo := newFakeRepo()
		repo.carts["u1"] = []cartdomain.LineItem{lineItem("A", "10", 1)}
		svc := NewService(repo, newFakeIdem())

		_, err := svc.SubmitOrder(ctx, "u1", "")
		assert.ErrorIs(t, err, ErrMissingToken)
		assert.Len(t, repo.carts["u1"], 1)
	})

	t.Run("same token replays the original order", func(t *testing.T) {
		repo := newFakeRepo()
		repo.carts["u1"] = []cartdomain.LineItem{lineItem("A", "10", 1)}
		svc := NewService(repo, newFakeIdem())

		first, err := svc.SubmitOrder(ctx, "u1", "tok-1")
		require.NoError(t, err)

		// Cart refilled between the two submissions; the replay must not
		// place a second order from it.
		repo.carts["u1"] = []cartdomain.LineItem{lineItem("B", "5", 1)}

		second, err := svc.SubmitOrder(ctx, "u1", "tok-1")
		require.NoError(t, err)
		assert.True(t, second.Replayed)
		assert.Equal(t, first.OrderID, second.OrderID)

		orders, err := svc.ListOrders(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("in-flight token is reported, not double-placed", func(t *testing.T) {
		repo := newFakeRepo()
		repo.carts["u1"] = []cartdomain.LineItem{lineItem("A", "10", 1)}
		idem := newFakeIdem()
		_, err := idem.Reserve(ctx, "u1", "tok-1") // reserved, no order recorded yet
		require.NoError(t, err)

		svc := NewService(repo, idem)
		_, err = svc.SubmitOrder(ctx, "u1", "tok-1")
		assert.ErrorIs(t, err, ErrSubmissionInFlight)
	})

	t.Run("failed placement releases the token for retry", func(t *testing.T) {
		repo := newFakeRepo()
		repo.carts["u1"] = []cartdomain.LineItem{lineItem("A", "10", 1)}
		repo.placeErr = errors.New("db down")
		idem := newFakeIdem()
		svc := NewService(repo, idem)

		_, err := svc.SubmitOrder(ctx, "u1", "tok-1")
		require.Error(t, err)

		repo.placeErr = nil
		receipt, err := svc.SubmitOrder(ctx, "u1", "tok-1")
		require.NoError(t, err)
		assert.False(t, receipt.Replayed)
	})

	t.Run("later cart mutations never change a placed order", func(t *testing.T) {
		repo := newFakeRepo()
		repo.carts["u1"] = []cartdomain.LineItem{lineItem("A", "10", 2)}
		svc := NewService(repo, newFakeIdem())

		_, err := svc.SubmitOrder(ctx, "u1", "tok-1")
		require.NoError(t, err)

		repo.carts["u1"] = []cartdomain.LineItem{lineItem("Z", "99", 9)}

		orders, err := svc.ListOrders(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, "A", orders[0].Items[0].SKU)
	})
}

func TestListOrders_EmptyLedger(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeIdem())

	orders, err := svc.ListOrders(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
