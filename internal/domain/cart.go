package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product entry in a user's cart. A user has at most one
// line per product; adding the same product again increases the quantity.
type CartLine struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartItem is a cart line joined with the current product state, as served
// to clients and consumed by checkout.
type CartItem struct {
	ProductID         string          `json:"product_id"`
	Title             string          `json:"title"`
	ImageURL          string          `json:"image_url"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	AddedAt           time.Time       `json:"added_at"`
}

// Subtotal returns the current price of the line (unit price times quantity).
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
