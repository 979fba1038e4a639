package models

import (
	"time"
)

// ProductsCollection is the gateway collection holding products
const ProductsCollection = "products"

// Color is a selectable color variant with its own picture
type Color struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Product is a handbag in the catalog
type Product struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Colors      []Color   `json:"colors"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
