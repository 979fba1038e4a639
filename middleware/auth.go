package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// AdminContextKey holds the authenticated models.Admin
const (
	AdminContextKey = "admin"
	TokenContextKey = "adminToken"

	msgUnauthorized = "Please login for access"
)

// RevocationChecker reports whether a token was revoked by logout
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AdminAuthMiddleware admits requests carrying a valid, unrevoked admin token
func AdminAuthMiddleware(jwtSecret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogDebug("AdminAuthMiddleware called")

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			utils.AbortWithError(c, msgUnauthorized, utils.UnauthorizedError("Authorization header is required", nil))
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			utils.LogError("Invalid Bearer token format")
			utils.AbortWithError(c, msgUnauthorized, utils.UnauthorizedError(msgUnauthorized, nil))
			return
		}

		if jwtSecret == "" {
			utils.LogError("JWT secret not configured")
			utils.AbortWithError(c, "JWT secret not configured", errors.New("empty jwt secret"))
			return
		}

		claims, err := utils.ValidateAdminToken(tokenString, jwtSecret)
		if err != nil {
			utils.LogError("Invalid admin token: %v", err)
			utils.AbortWithError(c, msgUnauthorized, utils.UnauthorizedError(msgUnauthorized, err))
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				utils.LogError("Failed to check token revocation: %v", err)
				utils.AbortWithError(c, "Unable to verify session", utils.ServiceUnavailableError("Unable to verify session", err))
				return
			}
			if isRevoked {
				utils.LogInfo("Revoked admin token used by %s", claims.Email)
				utils.AbortWithError(c, msgUnauthorized, utils.UnauthorizedError("Session has ended, please login again", nil))
				return
			}
		}

		c.Set(AdminContextKey, models.Admin{Email: claims.Email})
		c.Set(TokenContextKey, tokenString)
		utils.LogDebug("Admin %s authenticated successfully", claims.Email)
		c.Next()
	}
}

// CurrentAdmin returns the admin set by AdminAuthMiddleware
func CurrentAdmin(c *gin.Context) (models.Admin, bool) {
	v, ok := c.Get(AdminContextKey)
	if !ok {
		return models.Admin{}, false
	}
	admin, ok := v.(models.Admin)
	return admin, ok
}
