package models

import (
	"time"
)

const (
	// ReviewsCollection holds customer reviews
	ReviewsCollection = "reviews"
	// ReviewImagesCollection holds testimonial screenshots
	ReviewImagesCollection = "reviewImages"
)

// Review is a customer testimonial; only approved reviews reach the storefront
type Review struct {
	ID           string    `json:"id,omitempty"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"` // 1-5 stars
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
	IsApproved   bool      `json:"isApproved"`
	ProductID    string    `json:"productId,omitempty"`
}

// ReviewStats summarizes approved reviews
type ReviewStats struct {
	TotalReviews       int         `json:"totalReviews"`
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}

// ReviewImage is a screenshot of a customer conversation shown as a testimonial
type ReviewImage struct {
	ID        string    `json:"id,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	IsActive  bool      `json:"isActive"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}
