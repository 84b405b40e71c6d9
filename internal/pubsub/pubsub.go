// Package pubsub carries live events between the API and websocket subscribers.
package pubsub

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// subscriberBuffer is how many undelivered messages a slow subscriber may hold
// before new messages are dropped for it.
const subscriberBuffer = 64

// Broker publishes payloads on named channels.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	// Subscribe returns a message stream and a function that ends the subscription.
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// ─── Redis ──────────────────────────────────────────────────────────

// RedisBroker fans messages out through Redis Pub/Sub, so every server
// instance sees every event.
type RedisBroker struct {
	rdb *redis.Client
}

// NewRedisBroker creates a new RedisBroker.
func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb}
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.rdb.Publish(ctx, channel, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	ps := b.rdb.Subscribe(ctx, channel)
	// Wait for the subscription confirmation so no message published afterwards is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, err
	}

	out := make(chan []byte, subscriberBuffer)
	done := make(chan struct{})
	go func() {
		defer close(out)
		msgs := ps.Channel()
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				default:
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = ps.Close()
		})
	}
	return out, cancel, nil
}

// ─── In-process ─────────────────────────────────────────────────────

// LocalBroker delivers messages to subscribers of the same process.
type LocalBroker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

// NewLocalBroker creates a new LocalBroker.
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subs: make(map[string]map[chan []byte]struct{})}
}

func (b *LocalBroker) Publish(_ context.Context, channel string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[channel] {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (b *LocalBroker) Subscribe(_ context.Context, channel string) (<-chan []byte, func(), error) {
	ch := make(chan []byte, subscriberBuffer)

	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[chan []byte]struct{})
	}
	b.subs[channel][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[channel], ch)
			if len(b.subs[channel]) == 0 {
				delete(b.subs, channel)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}

// Subscribers returns the number of active subscribers on channel.
func (b *LocalBroker) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}
