package controllers

import (
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// ProductRequest is the admin product form
type ProductRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	Category    string         `json:"category"`
	Images      []string       `json:"images"`
	Colors      []models.Color `json:"colors"`
	InStock     *bool          `json:"inStock"`
}

// UpdateProductRequest carries only the fields to change
type UpdateProductRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       *float64        `json:"price" binding:"omitempty,gt=0"`
	Category    *string         `json:"category"`
	Images      *[]string       `json:"images"`
	Colors      *[]models.Color `json:"colors"`
	InStock     *bool           `json:"inStock"`
}

func (r UpdateProductRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Images != nil {
		fields["images"] = *r.Images
	}
	if r.Colors != nil {
		fields["colors"] = *r.Colors
	}
	if r.InStock != nil {
		fields["inStock"] = *r.InStock
	}
	return fields
}

// ListProducts returns the catalog, optionally filtered by ?category=
func (h *Controller) ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")
	products, err := h.Products.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	pagination := utils.NewPagination(c)
	page := utils.Paginate(products, pagination)
	utils.Success(c, "Products retrieved successfully", gin.H{
		"products":   page,
		"total":      len(products),
		"pagination": pagination,
	})
}

// GetProduct returns one product
func (h *Controller) GetProduct(c *gin.Context) {
	utils.LogInfo("GetProduct called")
	product, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, msgProductNotFound, msgLoadFailed, err)
		return
	}
	utils.Success(c, "Product retrieved successfully", product)
}

// CreateProduct adds a product to the catalog
func (h *Controller) CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		Colors:      req.Colors,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	id, err := h.Products.Create(c.Request.Context(), product)
	if err != nil {
		utils.InternalServerError(c, msgSaveFailed, err.Error())
		return
	}
	product.ID = id
	utils.LogInfo("Product %s created", id)
	utils.Created(c, "Product created successfully", product)
}

// UpdateProduct changes the submitted fields of a product
func (h *Controller) UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")
	id := c.Param("id")
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	fields := req.fields()
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := h.Products.Update(c.Request.Context(), id, fields); err != nil {
		storeError(c, msgProductNotFound, msgSaveFailed, err)
		return
	}
	product, err := h.Products.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, msgProductNotFound, msgLoadFailed, err)
		return
	}
	utils.Success(c, "Product updated successfully", product)
}

// DeleteProduct removes a product. Offers keep their snapshot.
func (h *Controller) DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")
	id := c.Param("id")
	if err := h.Products.Delete(c.Request.Context(), id); err != nil {
		storeError(c, msgProductNotFound, msgDeleteFailed, err)
		return
	}
	utils.Success(c, "Product deleted successfully", gin.H{"id": id})
}
