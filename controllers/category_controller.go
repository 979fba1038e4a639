package controllers

import (
	"strings"

	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// CategoryRequest is the admin category form
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// ListCategories returns every category by name
func (h *Controller) ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")
	categories, err := h.Categories.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// CreateCategory adds a category
func (h *Controller) CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	category := models.Category{Name: req.Name, Description: req.Description, Image: req.Image}
	category.Normalize()
	if category.Name == "" {
		utils.BadRequest(c, "Category name is required", nil)
		return
	}

	id, err := h.Categories.Create(c.Request.Context(), category)
	if err != nil {
		utils.InternalServerError(c, msgSaveFailed, err.Error())
		return
	}
	category.ID = id
	utils.Created(c, "Category created successfully", category)
}

// UpdateCategory replaces a category's fields
func (h *Controller) UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")
	id := c.Param("id")
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	fields := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": req.Description,
		"image":       req.Image,
	}
	if err := h.Categories.Update(c.Request.Context(), id, fields); err != nil {
		storeError(c, msgNotFound, msgSaveFailed, err)
		return
	}
	utils.Success(c, "Category updated successfully", gin.H{"id": id})
}

// DeleteCategory removes a category
func (h *Controller) DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")
	id := c.Param("id")
	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		storeError(c, msgNotFound, msgDeleteFailed, err)
		return
	}
	utils.Success(c, "Category deleted successfully", gin.H{"id": id})
}
