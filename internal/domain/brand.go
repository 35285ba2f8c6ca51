package domain

import "time"

// Brand represents a product brand shown on the storefront.
type Brand struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	BgGradient   string    `json:"bg_gradient"`
	LogoURL      string    `json:"logo_url"`
	ImageURL     string    `json:"image_url"`
	Link         string    `json:"link"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
