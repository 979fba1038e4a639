package controllers

import (
	"time"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/stores"
	"github.com/Govind-619/Sodfaa/surfaces"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// OfferCounts splits offers by admin list status
type OfferCounts struct {
	Total     int `json:"total"`
	Effective int `json:"effective"`
	Inactive  int `json:"inactive"`
	Expired   int `json:"expired"`
}

// EndingSoon is the effective offer closest to its end
type EndingSoon struct {
	OfferID   string `json:"offerId"`
	Name      string `json:"name"`
	EndTime   string `json:"endTime"`
	Countdown string `json:"countdown"`
}

// DashboardStats represents the response structure for dashboard statistics
type DashboardStats struct {
	Offers              OfferCounts        `json:"offers"`
	EndingSoon          *EndingSoon        `json:"endingSoon,omitempty"`
	TotalProducts       int                `json:"totalProducts"`
	TotalCategories     int                `json:"totalCategories"`
	PendingReviews      int                `json:"pendingReviews"`
	Reviews             models.ReviewStats `json:"reviews"`
	ActiveDiscountCodes int                `json:"activeDiscountCodes"`
}

// countOffers tallies offers by status at now
func countOffers(offers []models.Offer, now time.Time) OfferCounts {
	counts := OfferCounts{Total: len(offers)}
	for _, o := range offers {
		switch surfaces.StatusOf(o, now) {
		case surfaces.StatusEffective:
			counts.Effective++
		case surfaces.StatusInactive:
			counts.Inactive++
		case surfaces.StatusExpired:
			counts.Expired++
		}
	}
	return counts
}

// GetDashboardStats returns overall dashboard statistics
func (h *Controller) GetDashboardStats(c *gin.Context) {
	utils.LogInfo("GetDashboardStats called")
	ctx := c.Request.Context()
	now := h.now()
	lang := countdown.ParseLang(c.Query("lang"))

	offers, err := h.Offers.ListAll(ctx)
	if err != nil {
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}
	products, err := h.Products.List(ctx, "")
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	categories, err := h.Categories.List(ctx)
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	reviews, err := h.Reviews.ListAll(ctx)
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	codes, err := h.DiscountCodes.List(ctx)
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}

	stats := DashboardStats{
		Offers:          countOffers(offers, now),
		TotalProducts:   len(products),
		TotalCategories: len(categories),
	}

	grid := surfaces.BuildGridView(offers, products, now, lang)
	if grid.Banner != nil {
		stats.EndingSoon = &EndingSoon{
			OfferID:   grid.Banner.OfferID,
			Name:      grid.Banner.Name,
			EndTime:   grid.Cards[0].EndTime.Format(time.RFC3339),
			Countdown: grid.Banner.Countdown,
		}
	}
	approved := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.IsApproved {
			approved = append(approved, r)
		} else {
			stats.PendingReviews++
		}
	}
	stats.Reviews = stores.ComputeReviewStats(approved)
	for _, d := range codes {
		if stores.CheckDiscountCode(d, d.MinimumOrderAmount, now) == nil {
			stats.ActiveDiscountCodes++
		}
	}

	utils.Success(c, "Dashboard statistics retrieved successfully", stats)
}
