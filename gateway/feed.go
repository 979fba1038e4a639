package gateway

import (
	"context"
	"sync"
)

// ChangeFeed carries "collection changed" signals between writers and
// subscribers, possibly across processes.
type ChangeFeed interface {
	Publish(ctx context.Context, collection string) error
	Listen(fn func(collection string)) (stop func())
	Close() error
}

// LocalFeed fans changes out inside one process
type LocalFeed struct {
	mu        sync.RWMutex
	listeners map[int]func(string)
	next      int
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{listeners: make(map[int]func(string))}
}

func (f *LocalFeed) Publish(_ context.Context, collection string) error {
	f.dispatch(collection)
	return nil
}

func (f *LocalFeed) Listen(fn func(collection string)) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.listeners[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.listeners, id)
			f.mu.Unlock()
		})
	}
}

func (f *LocalFeed) Close() error {
	f.mu.Lock()
	f.listeners = make(map[int]func(string))
	f.mu.Unlock()
	return nil
}

func (f *LocalFeed) dispatch(collection string) {
	f.mu.RLock()
	fns := make([]func(string), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.RUnlock()

	for _, fn := range fns {
		fn(collection)
	}
}
