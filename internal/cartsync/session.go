// Package cartsync keeps a client-side mirror of the server cart. Mutations
// apply to the mirror first so the surface feels instantaneous, then go to
// the server; if the server refuses, the optimistic state is discarded and
// the mirror is rebuilt from a fresh fetch. The server stays the single
// source of truth.
package cartsync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

// State tracks the mirror relative to the server cart.
type State int

const (
	// StateSynced means the mirror matches the last server confirmation.
	StateSynced State = iota
	// StatePendingMutation means an optimistic change is applied locally
	// with its server call still in flight.
	StatePendingMutation
	// StateReconciling means a mutation failed and the mirror is stale
	// until a refetch succeeds.
	StateReconciling
)

func (s State) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StatePendingMutation:
		return "pending-mutation"
	case StateReconciling:
		return "reconciling"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidQuantity rejects a quantity below 1 locally; no server call is
// made for input the server would refuse anyway.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Backend interface {
	FetchCart(ctx context.Context) ([]domain.LineItem, error)
	ReplaceCart(ctx context.Context, items []domain.LineItem) error
	RemoveItem(ctx context.Context, sku string) error
	UpdateQuantity(ctx context.Context, sku string, quantity int) error
}

// Session owns one client's mirror for the lifetime of a login. It is not
// shared between sessions; construct it at login and drop it at logout.
// Operations on one Session are serialized.
type Session struct {
	backend Backend

	mu     sync.Mutex
	mirror []domain.LineItem
	state  State
}

func NewSession(backend Backend) *Session {
	return &Session{backend: backend, state: StateSynced}
}

// Fetch replaces the mirror with the authoritative cart unconditionally.
// It is the sole reconciliation point: used at session start and after any
// failed mutation.
func (s *Session) Fetch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchLocked(ctx)
}

func (s *Session) fetchLocked(ctx context.Context) error {
	items, err := s.backend.FetchCart(ctx)
	if err != nil {
		s.state = StateReconciling
		return fmt.Errorf("fetch cart: %w", err)
	}
	s.mirror = items
	s.state = StateSynced
	return nil
}

// Add merges the item into the mirror (same SKU increments quantity) and
// pushes the whole merged cart to the server.
func (s *Session) Add(ctx context.Context, item domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mirror = domain.Merge(s.mirror, item)
	s.state = StatePendingMutation

	if err := s.backend.ReplaceCart(ctx, s.mirror); err != nil {
		return s.reconcileLocked(ctx, err)
	}
	s.state = StateSynced
	return nil
}

// Remove filters the SKU out of the mirror and issues the server delete.
func (s *Session) Remove(ctx context.Context, sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.mirror[:0:0]
	for _, it := range s.mirror {
		if it.SKU != sku {
			kept = append(kept, it)
		}
	}
	s.mirror = kept
	s.state = StatePendingMutation

	if err := s.backend.RemoveItem(ctx, sku); err != nil {
		return s.reconcileLocked(ctx, err)
	}
	s.state = StateSynced
	return nil
}

// SetQuantity updates one line in place. A quantity below 1 is rejected
// before touching the mirror or the network.
func (s *Session) SetQuantity(ctx context.Context, sku string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.mirror {
		if s.mirror[i].SKU == sku {
			s.mirror[i].Quantity = quantity
			break
		}
	}
	s.state = StatePendingMutation

	if err := s.backend.UpdateQuantity(ctx, sku, quantity); err != nil {
		return s.reconcileLocked(ctx, err)
	}
	s.state = StateSynced
	return nil
}

// reconcileLocked discards the optimistic state after a failed mutation and
// rebuilds the mirror from the server. The mutation's own error is returned
// to the caller either way; a refetch failure leaves the session in
// StateReconciling so the next Fetch can heal it.
func (s *Session) reconcileLocked(ctx context.Context, cause error) error {
	s.state = StateReconciling
	if err := s.fetchLocked(ctx); err != nil {
		return fmt.Errorf("%w (resync failed: %v)", cause, err)
	}
	return cause
}

// Reset clears the mirror without a server call, for logout teardown.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = nil
	s.state = StateSynced
}

// State reports the current synchronization state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Items returns a copy of the mirror.
func (s *Session) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.mirror))
	copy(out, s.mirror)
	return out
}

// TotalItems is the sum of quantities in the mirror.
func (s *Session) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.mirror {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the mirror's price sum formatted as en-US USD.
func (s *Session) TotalPrice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.mirror {
		total = total.Add(it.Subtotal())
	}
	return FormatUSD(total)
}
