package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Govind-619/Sodfaa/config"
	"github.com/Govind-619/Sodfaa/middleware"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateKey   = "oauthState"
	googleUserInfo  = "https://www.googleapis.com/oauth2/v2/userinfo"
	msgInvalidLogin = "بيانات الدخول غير صحيحة / Invalid credentials"
)

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleUserInfo is the subset of the Google profile used for admin login
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// AdminLogin handles admin authentication
func (h *Controller) AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	utils.LogDebug("Processing login request for email: %s", email)

	if h.adminPasswordHash == "" || email != h.Config.AdminEmail {
		utils.LogError("Login attempt for unknown admin: %s", email)
		utils.Unauthorized(c, msgInvalidLogin)
		return
	}
	if !utils.CheckPassword(req.Password, h.adminPasswordHash) {
		utils.LogError("Invalid password for admin: %s", email)
		utils.Unauthorized(c, msgInvalidLogin)
		return
	}

	h.issueToken(c, email, "")
}

func (h *Controller) issueToken(c *gin.Context, email, name string) {
	if h.Config.JWTSecret == "" {
		utils.LogError("JWT secret not configured")
		utils.InternalServerError(c, "JWT secret not configured", nil)
		return
	}
	token, expires, err := utils.GenerateAdminToken(email, h.Config.JWTSecret, h.now())
	if err != nil {
		utils.LogError("Failed to sign JWT token for admin: %s: %v", email, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("Admin login successful: %s", email)
	utils.Success(c, "Login successful", gin.H{
		"token":     token,
		"expiresAt": expires,
		"admin":     gin.H{"email": email, "name": name},
	})
}

// AdminGoogleLogin redirects to the Google consent screen
func (h *Controller) AdminGoogleLogin(c *gin.Context) {
	utils.LogInfo("AdminGoogleLogin called")
	if config.GoogleOAuthConfig == nil {
		utils.Error(c, http.StatusNotImplemented, "Google login is not configured", nil)
		return
	}

	state, err := utils.GenerateState()
	if err != nil {
		utils.InternalServerError(c, "Failed to start Google login", err.Error())
		return
	}
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		utils.InternalServerError(c, "Failed to start Google login", err.Error())
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}

// AdminGoogleCallback completes Google login for allow-listed admins
func (h *Controller) AdminGoogleCallback(c *gin.Context) {
	utils.LogInfo("AdminGoogleCallback called")
	if config.GoogleOAuthConfig == nil {
		utils.Error(c, http.StatusNotImplemented, "Google login is not configured", nil)
		return
	}

	session := sessions.Default(c)
	expected, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	_ = session.Save()
	if expected == "" || c.Query("state") != expected {
		utils.LogError("OAuth state mismatch")
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := config.GoogleOAuthConfig.Client(c.Request.Context(), token).Get(googleUserInfo)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		utils.InternalServerError(c, "Failed to get user info", fmt.Sprintf("status %d", resp.StatusCode))
		return
	}

	var googleUser GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", err.Error())
		return
	}

	if !googleUser.VerifiedEmail || !h.Config.IsAdminEmail(googleUser.Email) {
		utils.LogError("Google account %s is not an admin", googleUser.Email)
		utils.Forbidden(c, "هذا الحساب ليس مسؤولاً / This account is not an admin")
		return
	}
	h.issueToken(c, strings.ToLower(googleUser.Email), googleUser.Name)
}

// AdminLogout revokes the presented token
func (h *Controller) AdminLogout(c *gin.Context) {
	utils.LogInfo("AdminLogout called")
	token := c.GetString(middleware.TokenContextKey)
	admin, _ := middleware.CurrentAdmin(c)

	claims, err := utils.ValidateAdminToken(token, h.Config.JWTSecret)
	if err != nil {
		utils.LogError("Failed to parse token on logout: %v", err)
		utils.Success(c, "Logged out successfully", nil)
		return
	}

	if err := h.Tokens.Revoke(c.Request.Context(), token, claims.ExpiresAt); err != nil {
		utils.LogError("Failed to revoke token on logout: %v", err)
		utils.InternalServerError(c, "Failed to logout", err.Error())
		return
	}
	utils.LogInfo("Admin %s logged out", admin.Email)
	utils.Success(c, "Logged out successfully", nil)
}
