package surfaces

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
)

// Card is one offer on the storefront grid
type Card struct {
	OfferDisplay
	Countdown string              `json:"countdown"`
	Remaining countdown.Remaining `json:"remaining"`
}

// Banner is the shared countdown above the grid, driven by the offer that
// ends first.
type Banner struct {
	OfferID   string              `json:"offerId"`
	Name      string              `json:"name"`
	Remaining countdown.Remaining `json:"remaining"`
	TimerBar  string              `json:"timerBar"`
	Countdown string              `json:"countdown"`
}

// GridView is one render of the storefront offers section
type GridView struct {
	Lang        countdown.Lang `json:"lang"`
	Cards       []Card         `json:"cards"`
	Banner      *Banner        `json:"banner,omitempty"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// BuildGridView keeps the effective offers, enriches them and picks the
// banner offer: the smallest end time, ties broken by the smallest id.
func BuildGridView(offers []models.Offer, products []models.Product, now time.Time, lang countdown.Lang) GridView {
	byID := indexProducts(products)

	effective := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if IsEffective(o, now) {
			effective = append(effective, o)
		}
	}
	sort.SliceStable(effective, func(i, j int) bool {
		if !effective[i].EndTime.Equal(effective[j].EndTime) {
			return effective[i].EndTime.Before(effective[j].EndTime)
		}
		return effective[i].ID < effective[j].ID
	})

	view := GridView{Lang: lang, Cards: make([]Card, 0, len(effective)), GeneratedAt: now}
	for _, o := range effective {
		r := countdown.Compute(o.EndTime, now)
		view.Cards = append(view.Cards, Card{
			OfferDisplay: Enrich(o, byID[o.ProductID]),
			Countdown:    countdown.Format(r, countdown.StyleList, lang),
			Remaining:    r,
		})
	}

	if len(view.Cards) > 0 {
		first := view.Cards[0]
		view.Banner = &Banner{
			OfferID:   first.ID,
			Name:      first.Name,
			Remaining: first.Remaining,
			TimerBar:  countdown.Format(first.Remaining, countdown.StyleTimerBar, lang),
			Countdown: countdown.Format(first.Remaining, countdown.StyleDetail, lang),
		}
	}
	return view
}

// GridSurface keeps a live grid: it follows the offers and products
// collections and re-renders on every change and every tick.
type GridSurface struct {
	offers   OfferSource
	products ProductSource
	lang     countdown.Lang
	now      func() time.Time
	onRender func(GridView)

	mu            sync.Mutex
	offerSnap     []models.Offer
	productSnap   []models.Product
	unsubOffers   func()
	unsubProducts func()
	tick          *ticker
	closed        bool
}

func NewGridSurface(offers OfferSource, products ProductSource, lang countdown.Lang, onRender func(GridView)) *GridSurface {
	return &GridSurface{
		offers:   offers,
		products: products,
		lang:     lang,
		now:      time.Now,
		onRender: onRender,
	}
}

// SetClock replaces the surface time source
func (g *GridSurface) SetClock(now func() time.Time) {
	g.now = now
}

// Activate subscribes to offers and products and starts the one second tick
func (g *GridSurface) Activate(ctx context.Context) error {
	unsubOffers, err := g.offers.Subscribe(ctx, func(offers []models.Offer) {
		g.mu.Lock()
		g.offerSnap = offers
		g.mu.Unlock()
		g.render(g.now())
	})
	if err != nil {
		utils.LogError("Grid surface failed to subscribe to offers: %v", err)
		return err
	}

	var unsubProducts func()
	if g.products != nil {
		unsubProducts, err = g.products.Subscribe(ctx, func(products []models.Product) {
			g.mu.Lock()
			g.productSnap = products
			g.mu.Unlock()
			g.render(g.now())
		})
		if err != nil {
			// prices fall back to the offer snapshot
			utils.LogWarn("Grid surface failed to subscribe to products: %v", err)
			unsubProducts = nil
		}
	}

	g.mu.Lock()
	g.unsubOffers, g.unsubProducts = unsubOffers, unsubProducts
	g.tick = startTicker(countdown.TickInterval, g.now, g.render)
	g.mu.Unlock()
	return nil
}

// View renders the grid from the latest snapshots
func (g *GridSurface) View() GridView {
	return g.view(g.now())
}

func (g *GridSurface) view(now time.Time) GridView {
	g.mu.Lock()
	offers, products := g.offerSnap, g.productSnap
	g.mu.Unlock()
	return BuildGridView(offers, products, now, g.lang)
}

func (g *GridSurface) render(now time.Time) {
	g.mu.Lock()
	closed := g.closed
	g.mu.Unlock()
	if closed || g.onRender == nil {
		return
	}
	g.onRender(g.view(now))
}

// Close cancels the tick and both subscriptions
func (g *GridSurface) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	tick, unsubOffers, unsubProducts := g.tick, g.unsubOffers, g.unsubProducts
	g.mu.Unlock()

	tick.Stop()
	if unsubOffers != nil {
		unsubOffers()
	}
	if unsubProducts != nil {
		unsubProducts()
	}
}
