package models

import (
	"fmt"
	"time"
)

// Product represents an item for sale in the shop. A stock quantity of
// zero means unlimited stock (digital products).
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:100;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	ImageURL    string  `json:"image_url" gorm:"size:255;not null"`
	Category    string  `json:"category" gorm:"size:50;not null;index"`
	// Boolean flags carry no gorm default: a column default would
	// silently overwrite false values on insert, since gorm omits
	// zero-value fields that have a default tag.
	IsAvailable    bool      `json:"is_available"`
	IsFeatured     bool      `json:"is_featured"`
	StockQuantity  int       `json:"stock_quantity" gorm:"default:0"`
	DigitalProduct bool      `json:"digital_product"`
	DeliveryTime   string    `json:"delivery_time" gorm:"size:50"`
	RequiresImage  bool      `json:"requires_image"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CheckAvailability reports whether the product can be sold in the
// requested quantity right now.
func (p *Product) CheckAvailability(quantity int) bool {
	if !p.IsAvailable {
		return false
	}
	if p.StockQuantity == 0 { // unlimited
		return true
	}
	return p.StockQuantity >= quantity
}

// FormattedPrice renders the price for templates.
func (p *Product) FormattedPrice() string {
	return fmt.Sprintf("%.2f €", p.Price)
}

// ToAPI returns the JSON representation served by the /api routes.
func (p *Product) ToAPI() map[string]any {
	return map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"description":     p.Description,
		"price":           p.Price,
		"image_url":       p.ImageURL,
		"category":        p.Category,
		"is_available":    p.IsAvailable,
		"is_featured":     p.IsFeatured,
		"digital_product": p.DigitalProduct,
		"delivery_time":   p.DeliveryTime,
		"created_at":      p.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":      p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
