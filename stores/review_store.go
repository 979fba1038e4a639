package stores

import (
	"context"
	"math"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
)

// ReviewStore manages customer reviews
type ReviewStore struct {
	reviews collection[models.Review]
}

func NewReviewStore(gw gateway.Gateway) *ReviewStore {
	return &ReviewStore{
		reviews: newCollection(gw, models.ReviewsCollection,
			func(r *models.Review, id string) { r.ID = id },
			gateway.Query{OrderBy: "date", Desc: true}),
	}
}

// Submit stores a customer review pending approval
func (s *ReviewStore) Submit(ctx context.Context, r models.Review) (string, error) {
	r.ID = ""
	r.Date = time.Now()
	r.IsApproved = false
	return s.reviews.Create(ctx, r)
}

// Create stores a review as given; admins use it to add approved testimonials
func (s *ReviewStore) Create(ctx context.Context, r models.Review) (string, error) {
	r.ID = ""
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	return s.reviews.Create(ctx, r)
}

// ListAll returns every review, newest first
func (s *ReviewStore) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.reviews.List(ctx, gateway.Query{})
}

// ListApproved returns approved reviews, newest first. limit <= 0 means all.
func (s *ReviewStore) ListApproved(ctx context.Context, limit int) ([]models.Review, error) {
	return s.reviews.List(ctx, gateway.Query{
		Where:   map[string]interface{}{"isApproved": true},
		OrderBy: "date",
		Desc:    true,
		Limit:   limit,
	})
}

func (s *ReviewStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.reviews.Update(ctx, id, fields)
}

// Approve publishes a review on the storefront
func (s *ReviewStore) Approve(ctx context.Context, id string, approved bool) error {
	return s.reviews.Update(ctx, id, map[string]interface{}{"isApproved": approved})
}

func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, id)
}

// Stats summarizes the approved reviews
func (s *ReviewStore) Stats(ctx context.Context) (models.ReviewStats, error) {
	reviews, err := s.ListApproved(ctx, 0)
	if err != nil {
		return models.ReviewStats{}, err
	}
	return ComputeReviewStats(reviews), nil
}

// ComputeReviewStats builds the total, the average rounded to one decimal
// and the 1..5 star distribution. Ratings outside 1..5 count toward the
// total and average only.
func ComputeReviewStats(reviews []models.Review) models.ReviewStats {
	stats := models.ReviewStats{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return stats
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
		if _, ok := stats.RatingDistribution[r.Rating]; ok {
			stats.RatingDistribution[r.Rating]++
		}
	}
	stats.TotalReviews = len(reviews)
	stats.AverageRating = math.Round(float64(total)/float64(len(reviews))*10) / 10
	return stats
}

// ReviewImageStore manages testimonial screenshots
type ReviewImageStore struct {
	images collection[models.ReviewImage]
}

func NewReviewImageStore(gw gateway.Gateway) *ReviewImageStore {
	return &ReviewImageStore{
		images: newCollection(gw, models.ReviewImagesCollection,
			func(r *models.ReviewImage, id string) { r.ID = id },
			gateway.Query{OrderBy: "order"}),
	}
}

func (s *ReviewImageStore) Create(ctx context.Context, img models.ReviewImage) (string, error) {
	img.ID = ""
	img.CreatedAt = time.Now()
	return s.images.Create(ctx, img)
}

// ListAll returns every image ordered by display order
func (s *ReviewImageStore) ListAll(ctx context.Context) ([]models.ReviewImage, error) {
	return s.images.List(ctx, gateway.Query{})
}

// ListActive returns the images shown on the storefront
func (s *ReviewImageStore) ListActive(ctx context.Context) ([]models.ReviewImage, error) {
	return s.images.List(ctx, gateway.Query{
		Where:   map[string]interface{}{"isActive": true},
		OrderBy: "order",
	})
}

func (s *ReviewImageStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.images.Update(ctx, id, fields)
}

func (s *ReviewImageStore) Delete(ctx context.Context, id string) error {
	return s.images.Delete(ctx, id)
}
