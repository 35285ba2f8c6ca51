package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product and its inventory counters.
// AvailableQuantity is the number of units that can still be sold;
// SoldQuantity accumulates units sold through checkouts.
type Product struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Slug              string          `json:"slug"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	ImageURL          string          `json:"image_url"`
	AvailableQuantity int             `json:"available_quantity"`
	SoldQuantity      int             `json:"sold_quantity"`
	BrandID           string          `json:"brand_id,omitempty"`
	CreatedBy         string          `json:"created_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InStock reports whether the product can satisfy a request for qty units.
func (p *Product) InStock(qty int) bool {
	return p.AvailableQuantity >= qty
}
