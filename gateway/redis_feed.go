package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/Govind-619/Sodfaa/utils"
	radix "github.com/mediocregopher/radix/v3"
)

// RedisChangesChannel is the pub/sub channel carrying collection names
const RedisChangesChannel = "sodfaa:changes"

// RedisFeed shares change signals between server instances over Redis
// pub/sub, so a cleanup on one instance refreshes subscribers on all others.
type RedisFeed struct {
	client radix.Client
	pubsub radix.PubSubConn
	msgCh  chan radix.PubSubMessage
	local  *LocalFeed
	done   chan struct{}
	once   sync.Once
}

// NewRedisFeed connects to addr and starts relaying change messages
func NewRedisFeed(addr string) (*RedisFeed, error) {
	pool, err := radix.NewPool("tcp", addr, 10)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	ps, err := radix.PersistentPubSubWithOpts("tcp", addr)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis pubsub: %w", err)
	}

	f := &RedisFeed{
		client: pool,
		pubsub: ps,
		msgCh:  make(chan radix.PubSubMessage, 64),
		local:  NewLocalFeed(),
		done:   make(chan struct{}),
	}
	if err := ps.Subscribe(f.msgCh, RedisChangesChannel); err != nil {
		ps.Close()
		pool.Close()
		return nil, fmt.Errorf("subscribe %s: %w", RedisChangesChannel, err)
	}
	go f.relay()
	return f, nil
}

func (f *RedisFeed) relay() {
	for {
		select {
		case <-f.done:
			return
		case msg := <-f.msgCh:
			if msg.Channel != RedisChangesChannel {
				continue
			}
			f.local.dispatch(string(msg.Message))
		}
	}
}

func (f *RedisFeed) Publish(_ context.Context, collection string) error {
	if err := f.client.Do(radix.Cmd(nil, "PUBLISH", RedisChangesChannel, collection)); err != nil {
		return fmt.Errorf("publish change for %s: %w", collection, err)
	}
	return nil
}

func (f *RedisFeed) Listen(fn func(collection string)) func() {
	return f.local.Listen(fn)
}

func (f *RedisFeed) Close() error {
	var err error
	f.once.Do(func() {
		close(f.done)
		if uerr := f.pubsub.Unsubscribe(f.msgCh, RedisChangesChannel); uerr != nil {
			utils.LogWarn("redis unsubscribe failed: %v", uerr)
		}
		err = f.pubsub.Close()
		if cerr := f.client.Close(); err == nil {
			err = cerr
		}
		f.local.Close()
	})
	return err
}
