package controllers

import (
	"strconv"

	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// ReviewRequest is a customer review submission
type ReviewRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"required"`
	ProductID    string `json:"productId"`
}

// ListApprovedReviews returns approved reviews, newest first, up to ?limit=
func (h *Controller) ListApprovedReviews(c *gin.Context) {
	utils.LogInfo("ListApprovedReviews called")
	limit, _ := strconv.Atoi(c.Query("limit"))
	reviews, err := h.Reviews.ListApproved(c.Request.Context(), limit)
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	utils.Success(c, "Reviews retrieved successfully", gin.H{"reviews": reviews})
}

// ReviewStats returns the approved review summary
func (h *Controller) ReviewStats(c *gin.Context) {
	utils.LogInfo("ReviewStats called")
	stats, err := h.Reviews.Stats(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	utils.Success(c, "Review stats retrieved successfully", stats)
}

// SubmitReview stores a customer review pending approval
func (h *Controller) SubmitReview(c *gin.Context) {
	utils.LogInfo("SubmitReview called")
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	var errs utils.FieldValidationErrors
	errs.Add("customerName", utils.ValidateText(req.CustomerName, 2, 60))
	errs.Add("comment", utils.ValidateText(req.Comment, 3, 1000))
	if len(errs) > 0 {
		utils.ValidationError(c, "بيانات غير صالحة / Invalid input", errs)
		return
	}

	id, err := h.Reviews.Submit(c.Request.Context(), models.Review{
		CustomerName: utils.SanitizeString(req.CustomerName),
		Rating:       req.Rating,
		Comment:      utils.SanitizeString(req.Comment),
		ProductID:    req.ProductID,
	})
	if err != nil {
		utils.InternalServerError(c, msgSaveFailed, err.Error())
		return
	}
	utils.Created(c, "شكراً لتقييمك، سيظهر بعد المراجعة / Thank you, your review will appear after approval", gin.H{"id": id})
}

// ListAllReviews returns every review for moderation
func (h *Controller) ListAllReviews(c *gin.Context) {
	utils.LogInfo("ListAllReviews called")
	reviews, err := h.Reviews.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	pagination := utils.NewPagination(c)
	utils.Success(c, "Reviews retrieved successfully", gin.H{
		"reviews":    utils.Paginate(reviews, pagination),
		"pagination": pagination,
	})
}

// ApproveReview publishes or hides a review
func (h *Controller) ApproveReview(c *gin.Context) {
	utils.LogInfo("ApproveReview called")
	id := c.Param("id")
	var req struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	if err := h.Reviews.Approve(c.Request.Context(), id, *req.Approved); err != nil {
		storeError(c, msgNotFound, msgSaveFailed, err)
		return
	}
	utils.Success(c, "Review updated successfully", gin.H{"id": id, "isApproved": *req.Approved})
}

// UpdateReview edits a review's text or rating
func (h *Controller) UpdateReview(c *gin.Context) {
	utils.LogInfo("UpdateReview called")
	id := c.Param("id")
	var req struct {
		CustomerName *string `json:"customerName"`
		Rating       *int    `json:"rating" binding:"omitempty,min=1,max=5"`
		Comment      *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.CustomerName != nil {
		fields["customerName"] = *req.CustomerName
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = *req.Comment
	}
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}
	if err := h.Reviews.Update(c.Request.Context(), id, fields); err != nil {
		storeError(c, msgNotFound, msgSaveFailed, err)
		return
	}
	utils.Success(c, "Review updated successfully", gin.H{"id": id})
}

// DeleteReview removes a review
func (h *Controller) DeleteReview(c *gin.Context) {
	utils.LogInfo("DeleteReview called")
	id := c.Param("id")
	if err := h.Reviews.Delete(c.Request.Context(), id); err != nil {
		storeError(c, msgNotFound, msgDeleteFailed, err)
		return
	}
	utils.Success(c, "Review deleted successfully", gin.H{"id": id})
}
