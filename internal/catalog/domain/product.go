package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Carts copy SKU, Name and Price at add time
// instead of joining back to the catalog.
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}
