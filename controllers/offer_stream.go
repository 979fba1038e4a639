package controllers

import (
	"io"
	"time"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/surfaces"
	"github.com/Govind-619/Sodfaa/utils"
	"github.com/gin-gonic/gin"
)

// keepLatest puts v on a one slot channel, replacing anything unread
func keepLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func sseHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

// StreamOffers pushes the grid on every change and every second
func (h *Controller) StreamOffers(c *gin.Context) {
	utils.LogInfo("StreamOffers called")
	ctx := c.Request.Context()
	lang := countdown.ParseLang(c.Query("lang"))

	views := make(chan surfaces.GridView, 1)
	grid := surfaces.NewGridSurface(h.Offers, h.Products, lang, func(v surfaces.GridView) {
		keepLatest(views, v)
	})
	grid.SetClock(h.now)
	if err := grid.Activate(ctx); err != nil {
		utils.InternalServerError(c, msgOffersLoadFailed, err.Error())
		return
	}
	defer grid.Close()

	sseHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v := <-views:
			c.SSEvent("grid", v)
			return true
		}
	})
	utils.LogDebug("Offer grid stream closed")
}

// StreamOffer follows one offer: "tick" every second, then "ended" and
// "back" once it runs out.
func (h *Controller) StreamOffer(c *gin.Context) {
	utils.LogInfo("StreamOffer called")
	ctx := c.Request.Context()
	id := c.Param("id")
	lang := countdown.ParseLang(c.Query("lang"))

	offer, err := h.resolveOffer(c, id)
	if err != nil {
		storeError(c, msgOfferNotFound, msgOffersLoadFailed, err)
		return
	}

	views := make(chan surfaces.DetailView, 1)
	back := make(chan struct{})
	detail := surfaces.NewDetailSurface(*offer, h.Products, h.Offers, lang,
		func(v surfaces.DetailView) { keepLatest(views, v) },
		func() { close(back) },
	)
	detail.SetClock(h.now)

	sseHeaders(c)
	detail.Activate(ctx)
	defer detail.Close()

	endedSent := false
	send := func(v surfaces.DetailView) {
		if v.Ended {
			if endedSent {
				return
			}
			endedSent = true
			c.SSEvent("ended", v)
			return
		}
		c.SSEvent("tick", v)
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v := <-views:
			send(v)
			return true
		case <-back:
			select {
			case v := <-views:
				send(v)
			default:
			}
			if !endedSent {
				send(detail.Tick(h.now()))
			}
			c.SSEvent("back", gin.H{"redirect": "/offers", "at": h.now().UTC().Format(time.RFC3339)})
			return false
		}
	})
	utils.LogDebug("Offer %s stream closed", id)
}
