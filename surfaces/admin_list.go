package surfaces

import (
	"context"
	"sync"
	"time"

	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
)

// OfferStatus is how the admin list labels an offer
type OfferStatus string

const (
	StatusEffective OfferStatus = "effective"
	StatusInactive  OfferStatus = "inactive"
	StatusExpired   OfferStatus = "expired"
)

// AdminOfferStore is what the admin list needs from the offer store
type AdminOfferStore interface {
	ListAll(ctx context.Context) ([]models.Offer, error)
	DeleteByID(ctx context.Context, id string) error
	Subscribe(ctx context.Context, onChange func([]models.Offer)) (func(), error)
}

// AdminRow is one offer in the admin list
type AdminRow struct {
	models.Offer
	Status          OfferStatus `json:"status"`
	EndTimeRaw      string      `json:"endTimeRaw"`
	Countdown       string      `json:"countdown"`
	DiscountedPrice float64     `json:"discountedPrice"`
}

// StatusOf classifies an offer at now. Expiry wins over the active flag.
func StatusOf(offer models.Offer, now time.Time) OfferStatus {
	switch {
	case offer.IsExpired(now):
		return StatusExpired
	case !offer.IsActive:
		return StatusInactive
	default:
		return StatusEffective
	}
}

// BuildAdminList renders every offer, including inactive and ended ones
func BuildAdminList(offers []models.Offer, now time.Time, lang countdown.Lang) []AdminRow {
	rows := make([]AdminRow, 0, len(offers))
	for _, o := range offers {
		rows = append(rows, AdminRow{
			Offer:           o,
			Status:          StatusOf(o, now),
			EndTimeRaw:      o.EndTime.Format(time.RFC3339),
			Countdown:       countdown.Format(countdown.Compute(o.EndTime, now), countdown.StyleList, lang),
			DiscountedPrice: DiscountedPrice(o.OriginalPrice, o.Discount),
		})
	}
	return rows
}

// AdminListSurface is the unfiltered offer list of the admin area. It never
// deletes on expiry; only explicit Delete calls remove offers.
type AdminListSurface struct {
	store AdminOfferStore
	lang  countdown.Lang
	now   func() time.Time

	mu       sync.Mutex
	snapshot []models.Offer
	unsub    func()
}

func NewAdminListSurface(store AdminOfferStore, lang countdown.Lang) *AdminListSurface {
	return &AdminListSurface{store: store, lang: lang, now: time.Now}
}

// SetClock replaces the surface time source
func (a *AdminListSurface) SetClock(now func() time.Time) {
	a.now = now
}

// List reads the offers once
func (a *AdminListSurface) List(ctx context.Context) ([]AdminRow, error) {
	offers, err := a.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildAdminList(offers, a.now(), a.lang), nil
}

// Delete removes an offer on an admin's request. Failures go back to the
// caller so the admin can retry.
func (a *AdminListSurface) Delete(ctx context.Context, id string) error {
	if err := a.store.DeleteByID(ctx, id); err != nil {
		utils.LogError("Admin delete of offer %s failed: %v", id, err)
		return err
	}
	return nil
}

// Activate pushes the rendered list on every offer change
func (a *AdminListSurface) Activate(ctx context.Context, onRender func([]AdminRow)) error {
	unsub, err := a.store.Subscribe(ctx, func(offers []models.Offer) {
		a.mu.Lock()
		a.snapshot = offers
		a.mu.Unlock()
		if onRender != nil {
			onRender(BuildAdminList(offers, a.now(), a.lang))
		}
	})
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.unsub = unsub
	a.mu.Unlock()
	return nil
}

// Rows re-renders the last pushed offers at the current time
func (a *AdminListSurface) Rows() []AdminRow {
	a.mu.Lock()
	offers := a.snapshot
	a.mu.Unlock()
	return BuildAdminList(offers, a.now(), a.lang)
}

// Close ends the subscription
func (a *AdminListSurface) Close() {
	a.mu.Lock()
	unsub := a.unsub
	a.unsub = nil
	a.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}
