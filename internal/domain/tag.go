package domain

import "time"

// Tag is a merchandising label. Products carry any number of tags through
// the product_tags join table.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TagStat is a tag together with the number of products currently carrying it.
type TagStat struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	ProductCount int    `json:"product_count"`
}
