package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/surfaces"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// CreateOfferRequest is the admin "create offer" form
type CreateOfferRequest struct {
	ProductID     string   `json:"productId" binding:"required"`
	Discount      *int     `json:"discount" binding:"required,min=0,max=100"`
	EndTime       string   `json:"endTime" binding:"required"` // RFC3339
	IsActive      *bool    `json:"isActive"`
	ProductName   string   `json:"productName"`
	OriginalPrice float64  `json:"originalPrice" binding:"omitempty,gt=0"`
	Images        []string `json:"images"`
}

// CreateOffer creates an offer, snapshotting the product when it exists
func (h *Controller) CreateOffer(c *gin.Context) {
	utils.LogInfo("CreateOffer called")
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid offer request: %v", err)
		utils.BadRequest(c, "بيانات غير صالحة / Invalid input", err.Error())
		return
	}

	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		utils.BadRequest(c, "Invalid date format. Use RFC3339.", nil)
		return
	}
	if !end.After(h.now()) {
		utils.BadRequest(c, "تاريخ الانتهاء يجب أن يكون في المستقبل / End time must be in the future", nil)
		return
	}

	offer := models.Offer{
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		OriginalPrice: req.OriginalPrice,
		Discount:      *req.Discount,
		Images:        req.Images,
		EndTime:       end.UTC(),
		IsActive:      true,
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	product, err := h.Products.Get(c.Request.Context(), req.ProductID)
	switch {
	case err == nil:
		offer.ProductName = product.Name
		offer.OriginalPrice = product.Price
		offer.Images = product.Images
	case gateway.IsNotFound(err):
		if offer.ProductName == "" || offer.OriginalPrice <= 0 {
			utils.NotFound(c, msgProductNotFound)
			return
		}
		utils.LogDebug("Product %s not found, keeping the submitted snapshot", req.ProductID)
	default:
		utils.InternalServerError(c, msgOfferCreateFailed, err.Error())
		return
	}

	id, err := h.Offers.Create(c.Request.Context(), offer)
	if err != nil {
		utils.InternalServerError(c, msgOfferCreateFailed, err.Error())
		return
	}
	offer.ID = id

	utils.LogInfo("Offer %s created for product %s", id, offer.ProductID)
	utils.Created(c, "تم إضافة العرض بنجاح / Offer created successfully", offer)
}

// ListAdminOffers returns every offer with its status
func (h *Controller) ListAdminOffers(c *gin.Context) {
	utils.LogInfo("ListAdminOffers called")
	list := surfaces.NewAdminListSurface(h.Offers, countdown.ParseLang(c.Query("lang")))
	list.SetClock(h.now)

	rows, err := list.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}
	utils.Success(c, "Offers retrieved successfully", gin.H{"offers": rows, "total": len(rows)})
}

// StreamAdminOffers pushes the admin list on every change and every second
func (h *Controller) StreamAdminOffers(c *gin.Context) {
	utils.LogInfo("StreamAdminOffers called")
	ctx := c.Request.Context()

	updates := make(chan []surfaces.AdminRow, 1)
	list := surfaces.NewAdminListSurface(h.Offers, countdown.ParseLang(c.Query("lang")))
	list.SetClock(h.now)
	if err := list.Activate(ctx, func(rows []surfaces.AdminRow) { keepLatest(updates, rows) }); err != nil {
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}
	defer list.Close()

	tick := time.NewTicker(countdown.TickInterval)
	defer tick.Stop()

	sseHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case rows := <-updates:
			c.SSEvent("offers", rows)
		case <-tick.C:
			c.SSEvent("offers", list.Rows())
		}
		return true
	})
}

// DeleteOffer removes an offer on an admin's request
func (h *Controller) DeleteOffer(c *gin.Context) {
	utils.LogInfo("DeleteOffer called")
	id := c.Param("id")

	list := surfaces.NewAdminListSurface(h.Offers, countdown.LangAR)
	if err := list.Delete(c.Request.Context(), id); err != nil {
		utils.Error(c, http.StatusInternalServerError, msgOfferDeleteFailed, err.Error())
		return
	}
	utils.LogInfo("Offer %s deleted by admin", id)
	utils.Success(c, "تم حذف العرض / Offer deleted", gin.H{"id": id})
}
