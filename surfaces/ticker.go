package surfaces

import (
	"sync"
	"time"
)

// ticker calls fn on a fixed interval until stopped. Every surface owns
// its own ticker and releases it on Close.
type ticker struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func startTicker(interval time.Duration, now func() time.Time, fn func(time.Time)) *ticker {
	t := &ticker{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tk.C:
				fn(now())
			}
		}
	}()
	return t
}

// Stop halts the ticker and waits for a running callback to return
func (t *ticker) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
	<-t.done
}
