package domain

import "time"

// Product is a catalog entry. Image refers to a stored asset filename
// under the configured upload directory; PriceCents is the fixed-point
// price in cents.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}
