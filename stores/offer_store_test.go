package stores

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyGateway fails deletes for the listed ids and can fail every list
type flakyGateway struct {
	gateway.Gateway
	mu         sync.Mutex
	failDelete map[string]bool
	failList   bool
}

func (g *flakyGateway) DeleteByID(ctx context.Context, collection, id string) error {
	g.mu.Lock()
	fail := g.failDelete[id]
	g.mu.Unlock()
	if fail {
		return &gateway.PersistenceError{Op: "delete", Collection: collection, ID: id, Err: errors.New("connection reset")}
	}
	return g.Gateway.DeleteByID(ctx, collection, id)
}

func (g *flakyGateway) List(ctx context.Context, collection string, q gateway.Query) ([]gateway.Document, error) {
	g.mu.Lock()
	fail := g.failList
	g.mu.Unlock()
	if fail {
		return nil, &gateway.PersistenceError{Op: "list", Collection: collection, Err: errors.New("timeout")}
	}
	return g.Gateway.List(ctx, collection, q)
}

func newOffer(product string, end time.Time, active bool) models.Offer {
	return models.Offer{
		ProductID:     product,
		ProductName:   "حقيبة " + product,
		OriginalPrice: 100,
		Discount:      20,
		Images:        []string{"https://cdn.example.com/" + product + ".jpg"},
		EndTime:       end,
		IsActive:      active,
	}
}

func TestOfferStoreCreateAndGet(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewOfferStore(gw)
	ctx := context.Background()
	end := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	id, err := store.Create(ctx, newOffer("p1", end, true))
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, 20, got.Discount)
	assert.True(t, got.EndTime.Equal(end))
	assert.False(t, got.CreatedAt.IsZero())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestOfferStoreListAllOrdersByEndTime(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewOfferStore(gw)
	ctx := context.Background()
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, newOffer("late", base.Add(3*time.Hour), true))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("early", base.Add(time.Hour), false))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("middle", base.Add(2*time.Hour), true))
	require.NoError(t, err)

	offers, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, "early", offers[0].ProductID)
	assert.Equal(t, "middle", offers[1].ProductID)
	assert.Equal(t, "late", offers[2].ProductID)
}

func TestOfferStoreDeleteIsIdempotent(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewOfferStore(gw)
	ctx := context.Background()

	id, err := store.Create(ctx, newOffer("p1", time.Now().Add(time.Hour), true))
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, id))
	require.NoError(t, store.DeleteByID(ctx, id), "second delete of the same offer succeeds")
	require.NoError(t, store.DeleteByID(ctx, "never-existed"))

	offers, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestDeleteAllExpiredIgnoresActiveFlag(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewOfferStore(gw)
	ctx := context.Background()
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, newOffer("expired-active", now.Add(-time.Minute), true))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("expired-inactive", now.Add(-time.Hour), false))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("ends-now", now, true))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("future-inactive", now.Add(time.Hour), false))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("future", now.Add(time.Second), true))
	require.NoError(t, err)

	result, err := store.DeleteAllExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Scanned)
	assert.Equal(t, 3, result.Deleted)
	assert.Equal(t, 0, result.Failed)
	assert.Len(t, result.Removed, 3)

	left, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "future", left[0].ProductID)
	assert.Equal(t, "future-inactive", left[1].ProductID)

	result, err = store.DeleteAllExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Deleted)
}

func TestDeleteAllExpiredContinuesPastFailures(t *testing.T) {
	mem := gateway.NewMemoryGateway(nil)
	defer mem.Close()
	flaky := &flakyGateway{Gateway: mem, failDelete: map[string]bool{}}
	store := NewOfferStore(flaky)
	ctx := context.Background()
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := store.Create(ctx, newOffer("a", now.Add(-3*time.Minute), true))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("b", now.Add(-2*time.Minute), true))
	require.NoError(t, err)
	_, err = store.Create(ctx, newOffer("c", now.Add(-time.Minute), true))
	require.NoError(t, err)
	flaky.failDelete[first] = true

	result, err := store.DeleteAllExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Deleted)
	assert.Equal(t, 1, result.Failed)

	left, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, first, left[0].ID)
}

func TestDeleteAllExpiredReportsReadFailure(t *testing.T) {
	mem := gateway.NewMemoryGateway(nil)
	defer mem.Close()
	flaky := &flakyGateway{Gateway: mem, failList: true}
	store := NewOfferStore(flaky)

	_, err := store.DeleteAllExpired(context.Background(), time.Now())
	require.Error(t, err)
	var pe *gateway.PersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestExpireAndRemove(t *testing.T) {
	mem := gateway.NewMemoryGateway(nil)
	defer mem.Close()
	flaky := &flakyGateway{Gateway: mem, failDelete: map[string]bool{}}
	store := NewOfferStore(flaky)
	ctx := context.Background()

	id, err := store.Create(ctx, newOffer("p1", time.Now().Add(-time.Second), true))
	require.NoError(t, err)

	assert.True(t, store.ExpireAndRemove(ctx, id, SourceDetail))
	assert.True(t, store.ExpireAndRemove(ctx, id, SourceDetail), "already removed counts as done")

	id, err = store.Create(ctx, newOffer("p2", time.Now().Add(-time.Second), true))
	require.NoError(t, err)
	flaky.failDelete[id] = true
	assert.False(t, store.ExpireAndRemove(ctx, id, SourceDetail))

	_, err = store.Get(ctx, id)
	assert.NoError(t, err, "failed background delete leaves the offer for the next sweep")
}

func TestOfferStoreSubscribe(t *testing.T) {
	gw := gateway.NewMemoryGateway(nil)
	defer gw.Close()
	store := NewOfferStore(gw)
	ctx := context.Background()

	var mu sync.Mutex
	var latest []models.Offer
	calls := 0
	unsubscribe, err := store.Subscribe(ctx, func(offers []models.Offer) {
		mu.Lock()
		defer mu.Unlock()
		latest = offers
		calls++
	})
	require.NoError(t, err)
	defer unsubscribe()

	_, err = store.Create(ctx, newOffer("p1", time.Now().Add(time.Hour), true))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 2 && len(latest) == 1 && latest[0].ProductID == "p1"
	}, time.Second, 10*time.Millisecond)
}
