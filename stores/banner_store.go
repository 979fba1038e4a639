package stores

import (
	"context"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
)

// BannerTextStore manages the storefront announcement lines
type BannerTextStore struct {
	banners collection[models.BannerText]
}

func NewBannerTextStore(gw gateway.Gateway) *BannerTextStore {
	return &BannerTextStore{
		banners: newCollection(gw, models.BannerTextCollection,
			func(b *models.BannerText, id string) { b.ID = id },
			gateway.Query{OrderBy: "order"}),
	}
}

func (s *BannerTextStore) Create(ctx context.Context, b models.BannerText) (string, error) {
	b.ID = ""
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	return s.banners.Create(ctx, b)
}

// ListAll returns every line ordered by display order
func (s *BannerTextStore) ListAll(ctx context.Context) ([]models.BannerText, error) {
	return s.banners.List(ctx, gateway.Query{})
}

// ListActive returns the lines shown on the storefront
func (s *BannerTextStore) ListActive(ctx context.Context) ([]models.BannerText, error) {
	return s.banners.List(ctx, gateway.Query{
		Where:   map[string]interface{}{"isActive": true},
		OrderBy: "order",
	})
}

func (s *BannerTextStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()
	return s.banners.Update(ctx, id, fields)
}

func (s *BannerTextStore) Delete(ctx context.Context, id string) error {
	return s.banners.Delete(ctx, id)
}
