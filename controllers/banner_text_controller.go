package controllers

import (
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgBannerLoadFailed = "فشل في تحميل نص الشريط / Failed to load banner text"
	bannerTextMaxLength  = 200
)

// ListActiveBannerTexts returns the announcement lines shown on the storefront
func (h *Controller) ListActiveBannerTexts(c *gin.Context) {
	banners, err := h.BannerTexts.ListActive(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgBannerLoadFailed, err.Error())
		return
	}
	utils.Success(c, "Banner text retrieved successfully", gin.H{"banners": banners})
}

// ListBannerTexts returns every line for the admin
func (h *Controller) ListBannerTexts(c *gin.Context) {
	banners, err := h.BannerTexts.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgBannerLoadFailed, err.Error())
		return
	}
	utils.Success(c, "Banner text retrieved successfully", gin.H{"banners": banners})
}

// CreateBannerText adds an announcement line
func (h *Controller) CreateBannerText(c *gin.Context) {
	utils.LogInfo("CreateBannerText called")
	var req struct {
		Text     string `json:"text" binding:"required"`
		IsActive *bool  `json:"isActive"`
		Order    int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	var errs utils.FieldValidationErrors
	errs.Add("text", utils.ValidateText(req.Text, 1, bannerTextMaxLength))
	if len(errs) > 0 {
		utils.ValidationError(c, "بيانات غير صالحة / Invalid input", errs)
		return
	}

	banner := models.BannerText{Text: utils.SanitizeString(req.Text), IsActive: true, Order: req.Order}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	id, err := h.BannerTexts.Create(c.Request.Context(), banner)
	if err != nil {
		utils.InternalServerError(c, "فشل في إضافة نص الشريط / Failed to add banner text", err.Error())
		return
	}
	banner.ID = id
	utils.Created(c, "Banner text added", banner)
}

// UpdateBannerText edits, toggles or reorders a line
func (h *Controller) UpdateBannerText(c *gin.Context) {
	utils.LogInfo("UpdateBannerText called")
	id := c.Param("id")
	var req struct {
		Text     *string `json:"text"`
		IsActive *bool   `json:"isActive"`
		Order    *int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.Text != nil {
		if msg := utils.ValidateText(*req.Text, 1, bannerTextMaxLength); msg != "" {
			var errs utils.FieldValidationErrors
			errs.Add("text", msg)
			utils.ValidationError(c, "بيانات غير صالحة / Invalid input", errs)
			return
		}
		fields["text"] = utils.SanitizeString(*req.Text)
	}
	if req.IsActive != nil {
		fields["isActive"] = *req.IsActive
	}
	if req.Order != nil {
		fields["order"] = *req.Order
	}
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}
	if err := h.BannerTexts.Update(c.Request.Context(), id, fields); err != nil {
		storeError(c, msgNotFound, "فشل في تحديث نص الشريط / Failed to update banner text", err)
		return
	}
	utils.Success(c, "Banner text updated", gin.H{"id": id})
}

// DeleteBannerText removes a line
func (h *Controller) DeleteBannerText(c *gin.Context) {
	utils.LogInfo("DeleteBannerText called")
	id := c.Param("id")
	if err := h.BannerTexts.Delete(c.Request.Context(), id); err != nil {
		storeError(c, msgNotFound, "فشل في حذف نص الشريط / Failed to delete banner text", err)
		return
	}
	utils.Success(c, "Banner text deleted", gin.H{"id": id})
}
