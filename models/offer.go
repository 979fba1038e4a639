package models

import (
	"time"
)

// OffersCollection is the gateway collection holding offers
const OffersCollection = "offers"

// Offer is a time-boxed discount on one product. ProductName, OriginalPrice
// and Images are a snapshot of the product taken when the offer was created
// and are only used when the live product cannot be loaded.
type Offer struct {
	ID            string    `json:"id,omitempty"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"` // 0-100 percent
	Images        []string  `json:"images"`
	EndTime       time.Time `json:"endTime"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsExpired reports whether the offer end time is at or before now
func (o Offer) IsExpired(now time.Time) bool {
	return !now.Before(o.EndTime)
}

// IsEffective reports whether the offer is flagged active and has not ended
func (o Offer) IsEffective(now time.Time) bool {
	return o.IsActive && now.Before(o.EndTime)
}
