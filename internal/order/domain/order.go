package domain

import (
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

// Order is an immutable snapshot of a cart taken at placement time. It is
// appended to the user's ledger and never mutated or removed afterwards.
type Order struct {
	ID       string                `json:"id"`
	UserID   string                `json:"-"`
	PlacedAt time.Time             `json:"date"`
	Items    []cartdomain.LineItem `json:"items"`
}

// Total is the sum of line subtotals.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
