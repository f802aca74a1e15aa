package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/shopping-hub/internal/order/domain"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrMissingToken rejects submissions without an idempotency token; a
	// retried request with no token could double-place an order.
	ErrMissingToken = errors.New("idempotency token is required")

	// ErrSubmissionInFlight means the token is reserved but the original
	// submission has not finished yet.
	ErrSubmissionInFlight = errors.New("order submission already in flight")
)

// Receipt acknowledges a submitted order. Replayed is true when the token
// had already been used and the original order is returned instead of a new
// one being placed.
type Receipt struct {
	OrderID  string    `json:"order_id"`
	PlacedAt time.Time `json:"placed_at"`
	Replayed bool      `json:"replayed,omitempty"`
}

type Service struct {
	repo OrderRepo
	idem IdempotencyStore
}

func NewService(repo OrderRepo, idem IdempotencyStore) *Service {
	return &Service{repo: repo, idem: idem}
}

// SubmitOrder converts the user's cart into a new ledger entry and empties
// the cart. The append and the clear commit together or not at all. The
// same token submitted twice places at most one order.
func (s *Service) SubmitOrder(ctx context.Context, userID, token string) (Receipt, error) {
	if token == "" {
		return Receipt{}, ErrMissingToken
	}

	reserved, err := s.idem.Reserve(ctx, userID, token)
	if err != nil {
		return Receipt{}, fmt.Errorf("reserve submission token: %w", err)
	}
	if !reserved {
		orderID, err := s.idem.OrderID(ctx, userID, token)
		if err != nil {
			return Receipt{}, fmt.Errorf("look up replayed order: %w", err)
		}
		if orderID == "" {
			return Receipt{}, ErrSubmissionInFlight
		}
		return Receipt{OrderID: orderID, Replayed: true}, nil
	}

	order, err := s.repo.PlaceFromCart(ctx, userID, uuid.NewString(), time.Now().UTC())
	if err != nil {
		// Free the token so the client can retry the same submission.
		if relErr := s.idem.Release(ctx, userID, token); relErr != nil {
			return Receipt{}, fmt.Errorf("place order: %w (release token: %v)", err, relErr)
		}
		return Receipt{}, err
	}

	// The order is committed at this point; losing the replay record only
	// degrades duplicate answers, so it does not fail the submission.
	_ = s.idem.RecordOrder(ctx, userID, token, order.ID)

	return Receipt{OrderID: order.ID, PlacedAt: order.PlacedAt}, nil
}

// ListOrders returns the user's ledger, newest first. A user with no orders
// gets an empty list.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
