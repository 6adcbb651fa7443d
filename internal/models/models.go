package models

import (
	"time"
)

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"` // shown in admin views and WhatsApp messages only
	ImageURL      string    `json:"image_url"`
	CategoryID    int       `json:"category_id"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// InStock reports whether the product can still be ordered.
// Zero stock disables ordering in the UI; the row is never deleted for it.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// LowStock drives the "(Low Stock)" hint on the detail page.
func (p Product) LowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= 5
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Admin struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, never serialized
}

// SocialMediaLink rows are read-only from the app's perspective;
// they are seeded by migration and rendered on home/contact.
type SocialMediaLink struct {
	ID        int       `json:"id"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}
