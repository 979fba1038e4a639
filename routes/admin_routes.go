package routes

import (
	"github.com/Govind-619/Sodfaa/controllers"
	"github.com/Govind-619/Sodfaa/middleware"
	"github.com/gin-gonic/gin"
)

func initAdminRoutes(api *gin.RouterGroup, h *controllers.Controller) {
	admin := api.Group("/admin")
	{
		admin.POST("/login", h.AdminLogin)
		admin.GET("/google/login", h.AdminGoogleLogin)
		admin.GET("/google/callback", h.AdminGoogleCallback)

		protected := admin.Group("")
		protected.Use(middleware.AdminAuthMiddleware(h.Config.JWTSecret, h.Tokens))
		{
			protected.POST("/logout", h.AdminLogout)
			protected.GET("/dashboard", h.GetDashboardStats)

			protected.GET("/offers", h.ListAdminOffers)
			protected.POST("/offers", h.CreateOffer)
			protected.GET("/offers/stream", h.StreamAdminOffers)
			protected.GET("/offers/export", h.ExportOffers)
			protected.DELETE("/offers/:id", h.DeleteOffer)

			protected.POST("/products", h.CreateProduct)
			protected.PUT("/products/:id", h.UpdateProduct)
			protected.DELETE("/products/:id", h.DeleteProduct)

			protected.POST("/categories", h.CreateCategory)
			protected.PUT("/categories/:id", h.UpdateCategory)
			protected.DELETE("/categories/:id", h.DeleteCategory)

			protected.GET("/reviews", h.ListAllReviews)
			protected.PUT("/reviews/:id", h.UpdateReview)
			protected.PATCH("/reviews/:id/approve", h.ApproveReview)
			protected.DELETE("/reviews/:id", h.DeleteReview)

			protected.GET("/review-images", h.ListReviewImages)
			protected.POST("/review-images", h.CreateReviewImage)
			protected.PUT("/review-images/:id", h.UpdateReviewImage)
			protected.DELETE("/review-images/:id", h.DeleteReviewImage)

			protected.GET("/banner-text", h.ListBannerTexts)
			protected.POST("/banner-text", h.CreateBannerText)
			protected.PUT("/banner-text/:id", h.UpdateBannerText)
			protected.DELETE("/banner-text/:id", h.DeleteBannerText)

			protected.GET("/discount-codes", h.ListDiscountCodes)
			protected.POST("/discount-codes", h.CreateDiscountCode)
			protected.PUT("/discount-codes/:id", h.UpdateDiscountCode)
			protected.DELETE("/discount-codes/:id", h.DeleteDiscountCode)

			protected.POST("/images", h.UploadImage)
			protected.DELETE("/images", h.DeleteImage)
		}
	}
}
