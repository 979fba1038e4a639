package routes

import (
	"github.com/Govind-619/Sodfaa/controllers"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(h *controllers.Controller) *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.MetricsMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	secret := h.Config.SessionSecret
	if secret == "" {
		utils.LogWarn("SESSION_SECRET not set; using an insecure development key")
		secret = "sodfaa-development-session-key"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   h.Config.Env == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("sodfaa", store))

	router.GET("/health", h.Health)
	router.GET("/metrics", utils.MetricsHandler())
	router.Static("/uploads", h.Config.UploadDir)

	// API version group
	api := router.Group("/v1")
	{
		initStorefrontRoutes(api, h)
		initAdminRoutes(api, h)
	}

	return router
}
