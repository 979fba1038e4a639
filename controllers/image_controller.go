package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/Sodfaa/blob"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// UploadImage stores an uploaded image and returns its URL. The target
// folder comes from the "folder" form field (products, offers, reviews...).
func (h *Controller) UploadImage(c *gin.Context) {
	utils.LogInfo("UploadImage called")
	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "No image uploaded", err.Error())
		return
	}
	if err := blob.ValidateImage(file.Filename, file.Size); err != nil {
		utils.BadRequest(c, msgUploadFailed, err.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.InternalServerError(c, msgUploadFailed, err.Error())
		return
	}
	defer src.Close()

	url, err := h.Blobs.Put(c.Request.Context(), c.DefaultPostForm("folder", "images"), file.Filename, src)
	if err != nil {
		if errors.Is(err, blob.ErrInvalidType) || errors.Is(err, blob.ErrTooLarge) {
			utils.BadRequest(c, msgUploadFailed, err.Error())
			return
		}
		utils.LogError("Image upload failed: %v", err)
		utils.InternalServerError(c, msgUploadFailed, err.Error())
		return
	}

	utils.LogInfo("Image uploaded to %s", url)
	c.JSON(http.StatusCreated, utils.StandardResponse{
		Status:  "success",
		Message: "Image uploaded successfully",
		Data:    gin.H{"url": h.Config.PublicBaseURL + url, "path": url},
	})
}

// DeleteImage removes an uploaded image by its path
func (h *Controller) DeleteImage(c *gin.Context) {
	utils.LogInfo("DeleteImage called")
	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	if err := h.Blobs.Delete(c.Request.Context(), req.Path); err != nil {
		utils.BadRequest(c, msgDeleteFailed, err.Error())
		return
	}
	utils.Success(c, "Image deleted", gin.H{"path": req.Path})
}
