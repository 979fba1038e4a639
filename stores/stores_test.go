package stores

import (
	"context"
	"testing"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStoreFilterByCategory(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewProductStore(gw)
	ctx := context.Background()

	bagID, err := store.Create(ctx, models.Product{Name: "حقيبة يد", Price: 250, Category: "handbags", InStock: true})
	require.NoError(t, err)
	_, err = store.Create(ctx, models.Product{Name: "محفظة", Price: 90, Category: "wallets"})
	require.NoError(t, err)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bags, err := store.List(ctx, "handbags")
	require.NoError(t, err)
	require.Len(t, bags, 1)
	assert.Equal(t, bagID, bags[0].ID)
	assert.NotNil(t, bags[0].Colors)

	require.NoError(t, store.Update(ctx, bagID, map[string]interface{}{"price": 199.5}))
	p, err := store.Get(ctx, bagID)
	require.NoError(t, err)
	assert.Equal(t, 199.5, p.Price)
	assert.Equal(t, "حقيبة يد", p.Name)
}

func TestReviewStoreApprovedAndStats(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewReviewStore(gw)
	ctx := context.Background()
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, rating := range []int{5, 4, 4} {
		_, err := store.Create(ctx, models.Review{
			CustomerName: "عميل",
			Rating:       rating,
			Comment:      "ممتاز",
			Date:         base.Add(time.Duration(i) * time.Hour),
			IsApproved:   true,
		})
		require.NoError(t, err)
	}
	pending, err := store.Submit(ctx, models.Review{CustomerName: "زائر", Rating: 1, IsApproved: true})
	require.NoError(t, err)

	approved, err := store.ListApproved(ctx, 2)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.True(t, approved[0].Date.After(approved[1].Date), "newest first")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalReviews)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.RatingDistribution)

	require.NoError(t, store.Approve(ctx, pending, true))
	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalReviews)
	assert.Equal(t, 3.5, stats.AverageRating)
}

func TestComputeReviewStatsEmpty(t *testing.T) {
	stats := ComputeReviewStats(nil)
	assert.Equal(t, 0, stats.TotalReviews)
	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Len(t, stats.RatingDistribution, 5)
}

func TestReviewImageStoreActiveOrdered(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewReviewImageStore(gw)
	ctx := context.Background()

	_, err := store.Create(ctx, models.ReviewImage{ImageURL: "/uploads/reviews/3.jpg", IsActive: true, Order: 3})
	require.NoError(t, err)
	_, err = store.Create(ctx, models.ReviewImage{ImageURL: "/uploads/reviews/1.jpg", IsActive: true, Order: 1})
	require.NoError(t, err)
	_, err = store.Create(ctx, models.ReviewImage{ImageURL: "/uploads/reviews/2.jpg", IsActive: false, Order: 2})
	require.NoError(t, err)

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].Order)
	assert.Equal(t, 3, active[1].Order)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBannerTextStoreActiveOrdered(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewBannerTextStore(gw)
	ctx := context.Background()

	shipID, err := store.Create(ctx, models.BannerText{Text: "شحن مجاني للطلبات أكثر من 500 جنيه", IsActive: true, Order: 2})
	require.NoError(t, err)
	_, err = store.Create(ctx, models.BannerText{Text: "مرحباً بك في صُدفة", IsActive: true, Order: 1})
	require.NoError(t, err)

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].Order)
	assert.False(t, active[0].CreatedAt.IsZero())

	require.NoError(t, store.Update(ctx, shipID, map[string]interface{}{"isActive": false}))
	active, err = store.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, store.Delete(ctx, shipID))
	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.True(t, gateway.IsNotFound(store.Delete(ctx, shipID)))
}

func TestDiscountCodeValidate(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewDiscountCodeStore(gw)
	ctx := context.Background()
	now := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, models.DiscountCode{
		Code:               " summer10 ",
		DiscountPercentage: 10,
		IsActive:           true,
		UsageLimit:         5,
		UsedCount:          1,
		StartDate:          now.Add(-24 * time.Hour),
		EndDate:            now.Add(24 * time.Hour),
		MinimumOrderAmount: 100,
	})
	require.NoError(t, err)

	code, err := store.Validate(ctx, "Summer10", 150, now)
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", code.Code)

	_, err = store.Validate(ctx, "summer10", 50, now)
	assert.ErrorIs(t, err, ErrOrderBelowMinimum)

	_, err = store.Validate(ctx, "summer10", 150, now.Add(48*time.Hour))
	assert.ErrorIs(t, err, ErrCodeExpired)

	_, err = store.Validate(ctx, "nope", 150, now)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCheckDiscountCode(t *testing.T) {
	now := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	open := models.DiscountCode{IsActive: true}

	tests := []struct {
		name string
		code models.DiscountCode
		want error
	}{
		{"open code", open, nil},
		{"inactive", models.DiscountCode{}, ErrCodeInactive},
		{"not started", models.DiscountCode{IsActive: true, StartDate: now.Add(time.Hour)}, ErrCodeNotStarted},
		{"exhausted", models.DiscountCode{IsActive: true, UsageLimit: 2, UsedCount: 2}, ErrCodeExhausted},
		{"unlimited usage", models.DiscountCode{IsActive: true, UsedCount: 1000}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDiscountCode(tt.code, 10, now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenStore(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewTokenStore(gw)
	ctx := context.Background()
	now := time.Now()

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "abc", now.Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "old", now.Add(-time.Hour)))

	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	revoked, err = store.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
