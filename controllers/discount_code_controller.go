package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/stores"
	"github.com/Govind-619/Sodfaa/surfaces"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// DiscountCodeRequest is the admin discount code form
type DiscountCodeRequest struct {
	Code               string  `json:"code" binding:"required"`
	Description        string  `json:"description"`
	DiscountPercentage float64 `json:"discountPercentage" binding:"required,gt=0,lte=100"`
	IsActive           *bool   `json:"isActive"`
	UsageLimit         int     `json:"usageLimit" binding:"omitempty,gte=0"`
	StartDate          string  `json:"startDate"` // RFC3339, optional
	EndDate            string  `json:"endDate"`   // RFC3339, optional
	MinimumOrderAmount float64 `json:"minimumOrderAmount" binding:"omitempty,gte=0"`
}

var discountCodeMessages = map[error]string{
	stores.ErrCodeNotFound:      "كود الخصم غير صحيح / Invalid discount code",
	stores.ErrCodeInactive:      "كود الخصم غير مفعل / Discount code is not active",
	stores.ErrCodeNotStarted:    "كود الخصم لم يبدأ بعد / Discount code is not valid yet",
	stores.ErrCodeExpired:       "كود الخصم منتهي / Discount code has expired",
	stores.ErrCodeExhausted:     "تم استخدام كود الخصم بالكامل / Discount code usage limit reached",
	stores.ErrOrderBelowMinimum: "قيمة الطلب أقل من الحد الأدنى / Order amount is below the minimum",
}

func parseOptionalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ListDiscountCodes returns every code
func (h *Controller) ListDiscountCodes(c *gin.Context) {
	utils.LogInfo("ListDiscountCodes called")
	codes, err := h.DiscountCodes.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}
	utils.Success(c, "Discount codes retrieved successfully", gin.H{"codes": codes})
}

// CreateDiscountCode adds a code; codes are unique ignoring case
func (h *Controller) CreateDiscountCode(c *gin.Context) {
	utils.LogInfo("CreateDiscountCode called")
	var req DiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	start, err1 := parseOptionalTime(req.StartDate)
	end, err2 := parseOptionalTime(req.EndDate)
	if err1 != nil || err2 != nil {
		utils.BadRequest(c, "Invalid date format. Use RFC3339.", nil)
		return
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		utils.BadRequest(c, "End date must be after start date", nil)
		return
	}

	if _, err := h.DiscountCodes.FindByCode(c.Request.Context(), req.Code); err == nil {
		utils.Error(c, http.StatusConflict, "Discount code already exists", nil)
		return
	} else if !errors.Is(err, stores.ErrCodeNotFound) {
		utils.InternalServerError(c, msgSaveFailed, err.Error())
		return
	}

	code := models.DiscountCode{
		Code:               req.Code,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           true,
		UsageLimit:         req.UsageLimit,
		StartDate:          start,
		EndDate:            end,
		MinimumOrderAmount: req.MinimumOrderAmount,
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}
	id, err := h.DiscountCodes.Create(c.Request.Context(), code)
	if err != nil {
		utils.InternalServerError(c, msgSaveFailed, err.Error())
		return
	}
	created, err := h.DiscountCodes.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, msgNotFound, msgLoadFailed, err)
		return
	}
	utils.Created(c, "Discount code created successfully", created)
}

// UpdateDiscountCode replaces the editable fields of a code
func (h *Controller) UpdateDiscountCode(c *gin.Context) {
	utils.LogInfo("UpdateDiscountCode called")
	id := c.Param("id")
	var req DiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	start, err1 := parseOptionalTime(req.StartDate)
	end, err2 := parseOptionalTime(req.EndDate)
	if err1 != nil || err2 != nil {
		utils.BadRequest(c, "Invalid date format. Use RFC3339.", nil)
		return
	}

	fields := map[string]interface{}{
		"code":               req.Code,
		"description":        req.Description,
		"discountPercentage": req.DiscountPercentage,
		"usageLimit":         req.UsageLimit,
		"startDate":          start,
		"endDate":            end,
		"minimumOrderAmount": req.MinimumOrderAmount,
	}
	if req.IsActive != nil {
		fields["isActive"] = *req.IsActive
	}
	if err := h.DiscountCodes.Update(c.Request.Context(), id, fields); err != nil {
		storeError(c, msgNotFound, msgSaveFailed, err)
		return
	}
	utils.Success(c, "Discount code updated successfully", gin.H{"id": id})
}

// DeleteDiscountCode removes a code
func (h *Controller) DeleteDiscountCode(c *gin.Context) {
	utils.LogInfo("DeleteDiscountCode called")
	id := c.Param("id")
	if err := h.DiscountCodes.Delete(c.Request.Context(), id); err != nil {
		storeError(c, msgNotFound, msgDeleteFailed, err)
		return
	}
	utils.Success(c, "Discount code deleted successfully", gin.H{"id": id})
}

// ValidateDiscountCode checks a code against an order amount
func (h *Controller) ValidateDiscountCode(c *gin.Context) {
	utils.LogInfo("ValidateDiscountCode called")
	var req struct {
		Code        string  `json:"code" binding:"required"`
		OrderAmount float64 `json:"orderAmount" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	code, err := h.DiscountCodes.Validate(c.Request.Context(), req.Code, req.OrderAmount, h.now())
	if err != nil {
		for known, msg := range discountCodeMessages {
			if errors.Is(err, known) {
				utils.BadRequest(c, msg, nil)
				return
			}
		}
		utils.InternalServerError(c, msgLoadFailed, err.Error())
		return
	}

	discount := req.OrderAmount * code.DiscountPercentage / 100
	utils.Success(c, "كود الخصم صالح / Discount code applied", gin.H{
		"code":               code.Code,
		"discountPercentage": code.DiscountPercentage,
		"discountAmount":     surfaces.FormatPrice(discount),
		"total":              surfaces.FormatPrice(req.OrderAmount - discount),
	})
}
