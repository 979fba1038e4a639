// Package surfaces holds the presentation logic of the offer views: the
// storefront grid, the single offer page and the admin list. Each surface
// recomputes its countdowns on a one second tick and reacts to expiry.
package surfaces

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Govind-619/Sodfaa/models"
)

// PlaceholderImage is shown when neither the product nor the offer has pictures
const PlaceholderImage = "/static/placeholder.png"

// ErrEnrichmentMiss means the offer's product could not be loaded. Surfaces
// fall back to the offer snapshot and never show it to a user.
var ErrEnrichmentMiss = errors.New("offer product not found")

// OfferSource is the offer read side used by the surfaces
type OfferSource interface {
	Get(ctx context.Context, id string) (*models.Offer, error)
	ListAll(ctx context.Context) ([]models.Offer, error)
	Subscribe(ctx context.Context, onChange func([]models.Offer)) (func(), error)
}

// ProductSource resolves live products for enrichment
type ProductSource interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	Subscribe(ctx context.Context, onChange func([]models.Product)) (func(), error)
}

// OfferDisplay is an offer merged with its live product
type OfferDisplay struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	Images          []string  `json:"images"`
	OriginalPrice   float64   `json:"originalPrice"`
	DiscountedPrice float64   `json:"discountedPrice"`
	Savings         float64   `json:"savings"`
	PriceText       string    `json:"priceText"`
	Discount        int       `json:"discount"`
	EndTime         time.Time `json:"endTime"`
	IsActive        bool      `json:"isActive"`
	LiveProduct     bool      `json:"liveProduct"`
}

// Enrich overlays the live product on the offer snapshot. product may be
// nil. The discounted price is derived on every call.
func Enrich(offer models.Offer, product *models.Product) OfferDisplay {
	d := OfferDisplay{
		ID:            offer.ID,
		ProductID:     offer.ProductID,
		Name:          offer.ProductName,
		Images:        offer.Images,
		OriginalPrice: offer.OriginalPrice,
		Discount:      offer.Discount,
		EndTime:       offer.EndTime,
		IsActive:      offer.IsActive,
	}

	if product != nil && product.ID == offer.ProductID {
		d.LiveProduct = true
		if product.Name != "" {
			d.Name = product.Name
		}
		if len(product.Images) > 0 {
			d.Images = product.Images
		}
		if product.Price > 0 {
			d.OriginalPrice = product.Price
		}
	}
	if len(d.Images) == 0 {
		d.Images = []string{PlaceholderImage}
	}

	d.DiscountedPrice = DiscountedPrice(d.OriginalPrice, d.Discount)
	d.Savings = roundCents(d.OriginalPrice - d.DiscountedPrice)
	d.PriceText = FormatPrice(d.DiscountedPrice)
	return d
}

// DiscountedPrice applies a percent discount, clamped to 0..100
func DiscountedPrice(price float64, discount int) float64 {
	if discount < 0 {
		discount = 0
	}
	if discount > 100 {
		discount = 100
	}
	return roundCents(price * (1 - float64(discount)/100))
}

// FormatPrice renders a price with two decimals
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// IsEffective reports whether an offer is active and not yet ended at now
func IsEffective(offer models.Offer, now time.Time) bool {
	return offer.IsEffective(now)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func indexProducts(products []models.Product) map[string]*models.Product {
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID
}

// lookupProduct loads the offer's product, returning ErrEnrichmentMiss when
// it is gone or cannot be read.
func lookupProduct(ctx context.Context, products ProductSource, id string) (*models.Product, error) {
	if products == nil || id == "" {
		return nil, ErrEnrichmentMiss
	}
	p, err := products.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentMiss, err)
	}
	return p, nil
}
