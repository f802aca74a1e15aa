package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one SKU's quantity within a cart or order. Name and Price are
// copied from the catalog at add time, so a placed order keeps the price
// that was actually charged even if the catalog changes later.
type LineItem struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal is Price * Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

var errDuplicateSKU = errors.New("duplicate sku")

// ValidateItems checks the rules every stored cart must satisfy: non-empty
// sku and name, positive price, quantity >= 1, sku unique across the list.
func ValidateItems(items []LineItem) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.SKU == "" {
			return fmt.Errorf("item %d: sku is required", i)
		}
		if it.Name == "" {
			return fmt.Errorf("item %d (%s): name is required", i, it.SKU)
		}
		if it.Price.Sign() <= 0 {
			return fmt.Errorf("item %d (%s): price must be positive", i, it.SKU)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("item %d (%s): quantity must be at least 1", i, it.SKU)
		}
		if _, dup := seen[it.SKU]; dup {
			return fmt.Errorf("item %d (%s): %w", i, it.SKU, errDuplicateSKU)
		}
		seen[it.SKU] = struct{}{}
	}
	return nil
}

// Merge folds item into items: an existing entry with the same SKU has its
// quantity incremented, otherwise the item is appended. The input slice is
// left untouched.
func Merge(items []LineItem, item LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].SKU == item.SKU {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}

// Find returns the line item with the given SKU, if present.
func Find(items []LineItem, sku string) (LineItem, bool) {
	for _, it := range items {
		if it.SKU == sku {
			return it, true
		}
	}
	return LineItem{}, false
}
