package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/utils"
)

// ErrOfferNotFound is returned by Get when the offer does not exist
var ErrOfferNotFound = errors.New("offer not found")

// Delete sources used in logs and metrics
const (
	SourceScheduler = "scheduler"
	SourceDetail    = "detail"
	SourceAdmin     = "admin"
)

// CleanupResult describes one sweep of expired offers
type CleanupResult struct {
	Scanned int
	Deleted int
	Failed  int
	Removed []models.Offer
}

// OfferStore is the typed boundary over the offers collection
type OfferStore struct {
	offers collection[models.Offer]
	now    func() time.Time
}

func NewOfferStore(gw gateway.Gateway) *OfferStore {
	return &OfferStore{
		offers: newCollection(gw, models.OffersCollection,
			func(o *models.Offer, id string) { o.ID = id },
			gateway.Query{OrderBy: "endTime"}),
		now: time.Now,
	}
}

// SetClock replaces the time source used to stamp new offers
func (s *OfferStore) SetClock(now func() time.Time) {
	s.now = now
}

// Create writes a new offer and returns its id
func (s *OfferStore) Create(ctx context.Context, offer models.Offer) (string, error) {
	offer.ID = ""
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = s.now()
	}
	if offer.Images == nil {
		offer.Images = []string{}
	}
	id, err := s.offers.Create(ctx, offer)
	if err != nil {
		utils.LogError("Failed to create offer for product %s: %v", offer.ProductID, err)
		return "", err
	}
	utils.LogInfo("Created offer %s for product %s (%d%%, ends %s)", id, offer.ProductID, offer.Discount, offer.EndTime.Format(time.RFC3339))
	return id, nil
}

// ListAll returns every offer, earliest end time first
func (s *OfferStore) ListAll(ctx context.Context) ([]models.Offer, error) {
	offers, err := s.offers.List(ctx, gateway.Query{OrderBy: "endTime"})
	if err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		return nil, err
	}
	return offers, nil
}

// Get looks an offer up by id
func (s *OfferStore) Get(ctx context.Context, id string) (*models.Offer, error) {
	offer, err := s.offers.Get(ctx, id)
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrOfferNotFound, id)
		}
		utils.LogError("Failed to fetch offer %s: %v", id, err)
		return nil, err
	}
	return &offer, nil
}

// DeleteByID removes an offer. Deleting an offer that is already gone
// succeeds, which makes concurrent expiry deletes safe to race.
func (s *OfferStore) DeleteByID(ctx context.Context, id string) error {
	err := s.offers.Delete(ctx, id)
	if gateway.IsNotFound(err) {
		utils.LogDebug("Offer %s already deleted", id)
		return nil
	}
	if err != nil {
		utils.LogError("Failed to delete offer %s: %v", id, err)
		return err
	}
	utils.LogInfo("Deleted offer %s", id)
	return nil
}

// DeleteAllExpired removes every offer whose end time is at or before now,
// active or not. A failed delete is logged and the sweep carries on.
func (s *OfferStore) DeleteAllExpired(ctx context.Context, now time.Time) (CleanupResult, error) {
	var result CleanupResult

	offers, err := s.ListAll(ctx)
	if err != nil {
		return result, err
	}
	result.Scanned = len(offers)

	for _, offer := range offers {
		if !offer.IsExpired(now) {
			continue
		}
		if err := s.DeleteByID(ctx, offer.ID); err != nil {
			result.Failed++
			utils.OfferDeleteFailures.WithLabelValues(SourceScheduler).Inc()
			continue
		}
		result.Deleted++
		result.Removed = append(result.Removed, offer)
		utils.OffersExpiredDeleted.WithLabelValues(SourceScheduler).Inc()
	}

	if result.Deleted > 0 || result.Failed > 0 {
		utils.LogInfo("Expired offer sweep: scanned=%d deleted=%d failed=%d", result.Scanned, result.Deleted, result.Failed)
	}
	return result, nil
}

// ExpireAndRemove is the background delete issued when a viewer sees an
// offer run out. Failures never reach a user; the next sweep retries.
func (s *OfferStore) ExpireAndRemove(ctx context.Context, id, source string) bool {
	if err := s.DeleteByID(ctx, id); err != nil {
		utils.LogWarn("Background delete of expired offer %s from %s failed, leaving it for the next sweep: %v", id, source, err)
		utils.OfferDeleteFailures.WithLabelValues(source).Inc()
		return false
	}
	utils.OffersExpiredDeleted.WithLabelValues(source).Inc()
	return true
}

// Subscribe pushes the full offer list, earliest end time first, on every change
func (s *OfferStore) Subscribe(ctx context.Context, onChange func([]models.Offer)) (func(), error) {
	return s.offers.Subscribe(ctx, gateway.Query{OrderBy: "endTime"}, onChange)
}
