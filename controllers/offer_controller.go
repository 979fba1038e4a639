package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/stores"
	"github.com/Govind-619/Sodfaa/surfaces"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// selectedOfferKey is the session key of the in-app offer hand-off
const selectedOfferKey = "selectedOffer"

// GetOffers returns the storefront grid
func (h *Controller) GetOffers(c *gin.Context) {
	utils.LogInfo("GetOffers called")
	lang := countdown.ParseLang(c.Query("lang"))

	offers, err := h.Offers.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}
	products, err := h.Products.List(c.Request.Context(), "")
	if err != nil {
		// cards fall back to the offer snapshot
		utils.LogWarn("Products unavailable for offer enrichment: %v", err)
		products = nil
	}

	view := surfaces.BuildGridView(offers, products, h.now(), lang)
	utils.LogDebug("Grid built with %d effective offers out of %d", len(view.Cards), len(offers))
	utils.Success(c, "Offers retrieved successfully", view)
}

// SelectOffer stores the offer in the session so the detail page can open
// without another read
func (h *Controller) SelectOffer(c *gin.Context) {
	utils.LogInfo("SelectOffer called")
	id := c.Param("id")

	offer, err := h.Offers.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, msgOfferNotFound, msgOffersLoadFailed, err)
		return
	}

	data, err := json.Marshal(offer)
	if err != nil {
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}
	session := sessions.Default(c)
	session.Set(selectedOfferKey, string(data))
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save selected offer in session: %v", err)
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}

	utils.Success(c, "Offer selected", gin.H{"id": offer.ID, "detail": "/v1/offers/" + offer.ID})
}

// resolveOffer prefers the session hand-off and falls back to a lookup by id
func (h *Controller) resolveOffer(c *gin.Context, id string) (*models.Offer, error) {
	session := sessions.Default(c)
	if raw, ok := session.Get(selectedOfferKey).(string); ok && raw != "" {
		var offer models.Offer
		if err := json.Unmarshal([]byte(raw), &offer); err == nil && offer.ID == id {
			utils.LogDebug("Offer %s taken from the session hand-off", id)
			return &offer, nil
		}
	}
	return surfaces.LoadOffer(c.Request.Context(), h.Offers, id)
}

func (h *Controller) liveProduct(ctx context.Context, productID string) *models.Product {
	if productID == "" {
		return nil
	}
	p, err := h.Products.Get(ctx, productID)
	if err != nil {
		utils.LogDebug("Product %s not found for enrichment: %v", productID, err)
		return nil
	}
	return p
}

// GetOffer returns the detail view of one offer. Viewing an ended offer
// removes it in the background.
func (h *Controller) GetOffer(c *gin.Context) {
	utils.LogInfo("GetOffer called")
	id := c.Param("id")
	lang := countdown.ParseLang(c.Query("lang"))

	offer, err := h.resolveOffer(c, id)
	if err != nil {
		storeError(c, msgOfferNotFound, msgOffersLoadFailed, err)
		return
	}

	view := surfaces.BuildDetailView(*offer, h.liveProduct(c.Request.Context(), offer.ProductID), h.now(), lang)
	if view.Ended {
		go h.Offers.ExpireAndRemove(context.Background(), offer.ID, stores.SourceDetail)
	}
	utils.Success(c, "Offer retrieved successfully", view)
}

// whatsappMessage is the pre-filled order text
func whatsappMessage(name string, discount int) string {
	if name == "" {
		name = "المنتج"
	}
	return fmt.Sprintf("مرحباً، أريد طلب %s بالعرض الخاص (خصم %d%%)", name, discount)
}

// OfferWhatsApp hands checkout off to a WhatsApp chat
func (h *Controller) OfferWhatsApp(c *gin.Context) {
	utils.LogInfo("OfferWhatsApp called")
	id := c.Param("id")

	offer, err := h.resolveOffer(c, id)
	if err != nil {
		storeError(c, msgOfferNotFound, msgOffersLoadFailed, err)
		return
	}
	if offer.IsExpired(h.now()) {
		utils.Error(c, http.StatusGone, countdown.ExpiredLabel(countdown.ParseLang(c.Query("lang"))), nil)
		return
	}

	display := surfaces.Enrich(*offer, h.liveProduct(c.Request.Context(), offer.ProductID))
	text := strings.ReplaceAll(url.QueryEscape(whatsappMessage(display.Name, offer.Discount)), "+", "%20")
	target := fmt.Sprintf("https://wa.me/%s?text=%s", h.Config.WhatsAppNumber, text)
	utils.LogDebug("Redirecting offer %s to WhatsApp", offer.ID)
	c.Redirect(http.StatusFound, target)
}
