package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/shopping-hub/internal/order/domain"
)

type OrderRepo interface {
	// PlaceFromCart snapshots the user's current cart into a new order and
	// clears the cart, both inside a single transaction. It returns
	// ErrEmptyCart without side effects when the cart has no items.
	PlaceFromCart(ctx context.Context, userID, orderID string, placedAt time.Time) (domain.Order, error)

	// ListByUser returns the user's orders, newest first, items included.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type IdempotencyStore interface {
	// Reserve claims the submission token. It returns false when the token
	// was already claimed by an earlier submission.
	Reserve(ctx context.Context, userID, token string) (bool, error)

	// Release frees a reservation whose submission failed, so the client can
	// retry with the same token.
	Release(ctx context.Context, userID, token string) error

	// RecordOrder binds the placed order's ID to the token.
	RecordOrder(ctx context.Context, userID, token, orderID string) error

	// OrderID returns the order ID recorded for the token, or empty if the
	// original submission is still in flight.
	OrderID(ctx context.Context, userID, token string) (string, error)
}
