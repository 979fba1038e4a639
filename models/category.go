package models

import (
	"strings"
)

// CategoriesCollection is the gateway collection holding categories
const CategoriesCollection = "categories"

type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Normalize trims the category name
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
}
