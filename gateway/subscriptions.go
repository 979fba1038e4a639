package gateway

import (
	"context"
	"sync"

	"github.com/Govind-619/Sodfaa/utils"
)

type lister func(ctx context.Context, collection string, q Query) ([]Document, error)

type subscriber struct {
	collection string
	query      Query
	onChange   func([]Document)

	mu     sync.Mutex
	closed bool
}

// deliver lists and calls back under the subscriber lock, so deliveries
// never overlap and the last one always reflects the latest state.
func (s *subscriber) deliver(ctx context.Context, list lister) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	docs, err := list(ctx, s.collection, s.query)
	if err != nil {
		utils.LogError("subscription refresh for %s failed: %v", s.collection, err)
		return
	}
	s.onChange(docs)
}

// hub tracks subscribers and refreshes them when the feed signals a change
type hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
	list lister
	stop func()
}

func newHub(feed ChangeFeed, list lister) *hub {
	h := &hub{
		subs: make(map[*subscriber]struct{}),
		list: list,
	}
	h.stop = feed.Listen(func(collection string) {
		go h.changed(collection)
	})
	return h
}

func (h *hub) subscribe(ctx context.Context, collection string, q Query, onChange func([]Document)) (func(), error) {
	s := &subscriber{collection: collection, query: q, onChange: onChange}

	// Register before the first read so no change can slip in between.
	s.mu.Lock()
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	docs, err := h.list(ctx, collection, q)
	if err != nil {
		s.closed = true
		s.mu.Unlock()
		h.mu.Lock()
		delete(h.subs, s)
		h.mu.Unlock()
		return nil, err
	}
	onChange(docs)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, s)
			h.mu.Unlock()
			s.mu.Lock()
			s.closed = true
			s.mu.Unlock()
		})
	}, nil
}

func (h *hub) changed(collection string) {
	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.subs))
	for s := range h.subs {
		if s.collection == collection {
			targets = append(targets, s)
		}
	}
	h.mu.Unlock()

	for _, s := range targets {
		s.deliver(context.Background(), h.list)
	}
}

func (h *hub) close() {
	h.stop()
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()
	for s := range subs {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	}
}
