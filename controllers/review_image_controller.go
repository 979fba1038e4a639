package controllers

import (
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// ListActiveReviewImages returns the testimonial screenshots shown on the storefront
func (h *Controller) ListActiveReviewImages(c *gin.Context) {
	images, err := h.ReviewImages.ListActive(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "فشل في تحميل صور التقييمات / Failed to load review images", err.Error())
		return
	}
	utils.Success(c, "Review images retrieved successfully", gin.H{"images": images})
}

// ListReviewImages returns every screenshot for the admin
func (h *Controller) ListReviewImages(c *gin.Context) {
	images, err := h.ReviewImages.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "فشل في تحميل صور التقييمات / Failed to load review images", err.Error())
		return
	}
	utils.Success(c, "Review images retrieved successfully", gin.H{"images": images})
}

// CreateReviewImage adds a screenshot
func (h *Controller) CreateReviewImage(c *gin.Context) {
	utils.LogInfo("CreateReviewImage called")
	var req struct {
		ImageURL string `json:"imageUrl" binding:"required"`
		IsActive *bool  `json:"isActive"`
		Order    int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	img := models.ReviewImage{ImageURL: req.ImageURL, IsActive: true, Order: req.Order}
	if req.IsActive != nil {
		img.IsActive = *req.IsActive
	}
	id, err := h.ReviewImages.Create(c.Request.Context(), img)
	if err != nil {
		utils.InternalServerError(c, "فشل في إضافة صورة التقييم / Failed to add review image", err.Error())
		return
	}
	img.ID = id
	utils.Created(c, "Review image added", img)
}

// UpdateReviewImage toggles or reorders a screenshot
func (h *Controller) UpdateReviewImage(c *gin.Context) {
	utils.LogInfo("UpdateReviewImage called")
	id := c.Param("id")
	var req struct {
		ImageURL *string `json:"imageUrl"`
		IsActive *bool   `json:"isActive"`
		Order    *int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.ImageURL != nil {
		fields["imageUrl"] = *req.ImageURL
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
	if err := h.ReviewImages.Update(c.Request.Context(), id, fields); err != nil {
		storeError(c, msgNotFound, "فشل في تحديث صورة التقييم / Failed to update review image", err)
		return
	}
	utils.Success(c, "Review image updated", gin.H{"id": id})
}

// DeleteReviewImage removes a screenshot
func (h *Controller) DeleteReviewImage(c *gin.Context) {
	utils.LogInfo("DeleteReviewImage called")
	id := c.Param("id")
	if err := h.ReviewImages.Delete(c.Request.Context(), id); err != nil {
		storeError(c, msgNotFound, "فشل في حذف صورة التقييم / Failed to delete review image", err)
		return
	}
	utils.Success(c, "Review image deleted", gin.H{"id": id})
}
