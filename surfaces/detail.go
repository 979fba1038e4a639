package surfaces

import (
	"context"
	"sync"
	"time"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/stores"
	"github.com/Govind-619/Sodfaa/utils"
)

// OfferRemover is the idempotent delete issued when a viewer sees an offer end
type OfferRemover interface {
	ExpireAndRemove(ctx context.Context, id, source string) bool
}

// DetailView is one render of the single offer page
type DetailView struct {
	Offer     OfferDisplay        `json:"offer"`
	Remaining countdown.Remaining `json:"remaining"`
	Countdown string              `json:"countdown"`
	TimerBar  string              `json:"timerBar"`
	Ended     bool                `json:"ended"`
}

// BuildDetailView renders one offer at now
func BuildDetailView(offer models.Offer, product *models.Product, now time.Time, lang countdown.Lang) DetailView {
	r := countdown.Compute(offer.EndTime, now)
	return DetailView{
		Offer:     Enrich(offer, product),
		Remaining: r,
		Countdown: countdown.Format(r, countdown.StyleDetail, lang),
		TimerBar:  countdown.Format(r, countdown.StyleTimerBar, lang),
		Ended:     r.Expired,
	}
}

// LoadOffer fetches an offer by id for a page opened without one in memory
func LoadOffer(ctx context.Context, offers OfferSource, id string) (*models.Offer, error) {
	offer, err := offers.Get(ctx, id)
	if err != nil {
		utils.LogDebug("Offer %s could not be loaded for the detail page: %v", id, err)
		return nil, err
	}
	return offer, nil
}

// DetailSurface drives the page of one offer. The first tick that finds the
// offer ended shows the ended state, removes the offer in the background and
// then calls onBack. That happens once per surface.
type DetailSurface struct {
	offer    models.Offer
	products ProductSource
	remover  OfferRemover
	lang     countdown.Lang
	now      func() time.Time
	onRender func(DetailView)
	onBack   func()

	mu      sync.Mutex
	product *models.Product
	ended   bool
	tick    *ticker
	closed  bool
	done    chan struct{}
}

func NewDetailSurface(offer models.Offer, products ProductSource, remover OfferRemover, lang countdown.Lang, onRender func(DetailView), onBack func()) *DetailSurface {
	return &DetailSurface{
		offer:    offer,
		products: products,
		remover:  remover,
		lang:     lang,
		now:      time.Now,
		onRender: onRender,
		onBack:   onBack,
		done:     make(chan struct{}),
	}
}

// SetClock replaces the surface time source
func (d *DetailSurface) SetClock(now func() time.Time) {
	d.now = now
}

// Activate loads the live product, renders once and starts the tick
func (d *DetailSurface) Activate(ctx context.Context) {
	product, err := lookupProduct(ctx, d.products, d.offer.ProductID)
	if err != nil {
		utils.LogDebug("Offer %s shown from its snapshot: %v", d.offer.ID, err)
	}

	d.mu.Lock()
	d.product = product
	d.mu.Unlock()

	d.emit(d.Tick(d.now()))

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.tick = startTicker(countdown.TickInterval, d.now, func(now time.Time) {
		d.mu.Lock()
		alreadyEnded := d.ended
		d.mu.Unlock()
		if alreadyEnded {
			return
		}
		d.emit(d.Tick(now))
	})
}

// Tick recomputes the view at now. The first expired observation starts
// the background removal.
func (d *DetailSurface) Tick(now time.Time) DetailView {
	d.mu.Lock()
	view := BuildDetailView(d.offer, d.product, now, d.lang)
	firstExpiry := view.Ended && !d.ended
	if firstExpiry {
		d.ended = true
	}
	d.mu.Unlock()

	if firstExpiry {
		utils.LogInfo("Offer %s ended while being viewed", d.offer.ID)
		go d.expire()
	}
	return view
}

func (d *DetailSurface) expire() {
	defer close(d.done)
	if d.remover != nil {
		d.remover.ExpireAndRemove(context.Background(), d.offer.ID, stores.SourceDetail)
	}
	if d.onBack != nil {
		d.onBack()
	}
}

// Expired is closed after an ended offer has been removed and onBack has run
func (d *DetailSurface) Expired() <-chan struct{} {
	return d.done
}

// Offer returns the offer the surface shows
func (d *DetailSurface) Offer() models.Offer {
	return d.offer
}

func (d *DetailSurface) emit(view DetailView) {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed || d.onRender == nil {
		return
	}
	d.onRender(view)
}

// Close stops the tick. A removal already under way still completes.
func (d *DetailSurface) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	tick := d.tick
	d.mu.Unlock()

	tick.Stop()
}
