package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/Sodfaa/blob"
	"github.com/Govind-619/Sodfaa/config"
	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/stores"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// Bilingual messages shown to users
const (
	msgOfferNotFound     = "العرض غير موجود / Offer not found"
	msgOfferCreateFailed = "فشل في إضافة العرض / Failed to create offer"
	msgOfferDeleteFailed = "فشل في حذف العرض / Failed to delete offer"
	msgOffersLoadFailed  = "فشل في تحميل العروض / Failed to load offers"
	msgProductNotFound   = "المنتج غير موجود / Product not found"
	msgSaveFailed        = "فشل في الحفظ / Failed to save"
	msgLoadFailed        = "فشل في التحميل / Failed to load"
	msgDeleteFailed      = "فشل في الحذف / Failed to delete"
	msgNotFound          = "غير موجود / Not found"
	msgUploadFailed      = "فشل في رفع الصورة / Failed to upload image"
)

// Controller holds the stores every handler works with
type Controller struct {
	Config        *config.Config
	Offers        *stores.OfferStore
	Products      *stores.ProductStore
	Categories    *stores.CategoryStore
	Reviews       *stores.ReviewStore
	ReviewImages  *stores.ReviewImageStore
	BannerTexts   *stores.BannerTextStore
	DiscountCodes *stores.DiscountCodeStore
	Tokens        *stores.TokenStore
	Blobs         blob.Store

	adminPasswordHash string
	now               func() time.Time
}

// New wires the stores over gw
func New(cfg *config.Config, gw gateway.Gateway, blobs blob.Store) (*Controller, error) {
	h := &Controller{
		Config:        cfg,
		Offers:        stores.NewOfferStore(gw),
		Products:      stores.NewProductStore(gw),
		Categories:    stores.NewCategoryStore(gw),
		Reviews:       stores.NewReviewStore(gw),
		ReviewImages:  stores.NewReviewImageStore(gw),
		BannerTexts:   stores.NewBannerTextStore(gw),
		DiscountCodes: stores.NewDiscountCodeStore(gw),
		Tokens:        stores.NewTokenStore(gw),
		Blobs:         blobs,
		now:           time.Now,
	}

	// ADMIN_PASSWORD may hold a bcrypt hash or a plain password
	switch {
	case cfg.AdminPassword == "":
		utils.LogWarn("ADMIN_PASSWORD not set; password login is disabled")
	case strings.HasPrefix(cfg.AdminPassword, "$2"):
		h.adminPasswordHash = cfg.AdminPassword
	default:
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
		h.adminPasswordHash = hash
	}
	return h, nil
}

// SetClock replaces the time source used by the handlers
func (h *Controller) SetClock(now func() time.Time) {
	h.now = now
	h.Offers.SetClock(now)
}

// classifyStoreError turns a store failure into an *utils.AppError
func classifyStoreError(notFoundMsg, failMsg string, err error) *utils.AppError {
	if appErr := utils.GetAppError(err); appErr != nil {
		return appErr
	}
	if gateway.IsNotFound(err) || errors.Is(err, stores.ErrOfferNotFound) {
		return utils.NotFoundError(notFoundMsg, err)
	}
	return utils.NewAppError(http.StatusInternalServerError, failMsg, err)
}

// storeError maps a store failure onto the response envelope
func storeError(c *gin.Context, notFoundMsg, failMsg string, err error) {
	utils.AbortWithError(c, failMsg, classifyStoreError(notFoundMsg, failMsg, err))
}

// Health reports liveness
func (h *Controller) Health(c *gin.Context) {
	utils.Success(c, "ok", gin.H{"time": h.now().UTC().Format(time.RFC3339)})
}
