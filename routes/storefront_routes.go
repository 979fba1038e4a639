package routes

import (
	"github.com/Govind-619/Sodfaa/controllers"
	"github.com/gin-gonic/gin"
)

func initStorefrontRoutes(api *gin.RouterGroup, h *controllers.Controller) {
	offers := api.Group("/offers")
	{
		offers.GET("", h.GetOffers)
		offers.GET("/stream", h.StreamOffers)
		offers.GET("/:id", h.GetOffer)
		offers.POST("/:id/select", h.SelectOffer)
		offers.GET("/:id/stream", h.StreamOffer)
		offers.GET("/:id/whatsapp", h.OfferWhatsApp)
	}

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories", h.ListCategories)

	reviews := api.Group("/reviews")
	{
		reviews.GET("", h.ListApprovedReviews)
		reviews.GET("/stats", h.ReviewStats)
		reviews.POST("", h.SubmitReview)
	}
	api.GET("/review-images", h.ListActiveReviewImages)
	api.GET("/banner-text", h.ListActiveBannerTexts)

	api.POST("/discount-codes/validate", h.ValidateDiscountCode)
}
