package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/Govind-619/Sodfaa/utils"
	"github.com/google/uuid"
)

// MemoryGateway keeps every collection in process memory. It backs the
// "memory" driver and the test suites.
type MemoryGateway struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	feed        ChangeFeed
	hub         *hub
	now         func() time.Time
}

// NewMemoryGateway creates an empty gateway. A nil feed means a LocalFeed.
func NewMemoryGateway(feed ChangeFeed) *MemoryGateway {
	if feed == nil {
		feed = NewLocalFeed()
	}
	g := &MemoryGateway{
		collections: make(map[string]map[string]Document),
		feed:        feed,
		now:         time.Now,
	}
	g.hub = newHub(feed, g.List)
	return g
}

func (g *MemoryGateway) Create(ctx context.Context, collection string, record interface{}) (string, error) {
	data, err := encodeRecord(record)
	if err != nil {
		return "", persistenceError("create", collection, "", err)
	}

	now := g.now()
	doc := Document{ID: uuid.NewString(), Data: data, CreatedAt: now, UpdatedAt: now}

	g.mu.Lock()
	docs, ok := g.collections[collection]
	if !ok {
		docs = make(map[string]Document)
		g.collections[collection] = docs
	}
	docs[doc.ID] = doc
	g.mu.Unlock()

	g.publish(ctx, collection)
	return doc.ID, nil
}

func (g *MemoryGateway) Get(_ context.Context, collection, id string) (Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	doc, ok := g.collections[collection][id]
	if !ok {
		return Document{}, persistenceError("get", collection, id, ErrNotFound)
	}
	return doc, nil
}

func (g *MemoryGateway) List(_ context.Context, collection string, q Query) ([]Document, error) {
	g.mu.RLock()
	docs := make([]Document, 0, len(g.collections[collection]))
	for _, d := range g.collections[collection] {
		docs = append(docs, d)
	}
	g.mu.RUnlock()
	return applyQuery(docs, q), nil
}

func (g *MemoryGateway) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	g.mu.Lock()
	doc, ok := g.collections[collection][id]
	if !ok {
		g.mu.Unlock()
		return persistenceError("update", collection, id, ErrNotFound)
	}
	data, err := mergeFields(doc.Data, fields)
	if err != nil {
		g.mu.Unlock()
		return persistenceError("update", collection, id, err)
	}
	doc.Data = data
	doc.UpdatedAt = g.now()
	g.collections[collection][id] = doc
	g.mu.Unlock()

	g.publish(ctx, collection)
	return nil
}

func (g *MemoryGateway) DeleteByID(ctx context.Context, collection, id string) error {
	g.mu.Lock()
	if _, ok := g.collections[collection][id]; !ok {
		g.mu.Unlock()
		return persistenceError("delete", collection, id, ErrNotFound)
	}
	delete(g.collections[collection], id)
	g.mu.Unlock()

	g.publish(ctx, collection)
	return nil
}

func (g *MemoryGateway) Subscribe(ctx context.Context, collection string, q Query, onChange func([]Document)) (func(), error) {
	return g.hub.subscribe(ctx, collection, q, onChange)
}

func (g *MemoryGateway) Close() error {
	g.hub.close()
	return g.feed.Close()
}

func (g *MemoryGateway) publish(ctx context.Context, collection string) {
	if err := g.feed.Publish(ctx, collection); err != nil {
		utils.LogError("publish change for %s failed: %v", collection, err)
	}
}
