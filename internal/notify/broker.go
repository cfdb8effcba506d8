// Package notify fans editor events out to interested listeners: status
// messages for the frontend, log entries, and external file changes.
package notify

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 32

// Kind classifies a published event.
type Kind string

const (
	KindStatus   Kind = "status"   // user-facing status line message
	KindLog      Kind = "log"      // formatted debug log entry
	KindExternal Kind = "external" // the open file changed on disk
)

// Event is one published item with a typed payload.
type Event[T any] struct {
	Kind    Kind
	Payload T
	At      time.Time
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(kind Kind, payload T)
}

// Broker delivers each published event to every live subscription.
// Publishing never blocks: a subscriber whose buffer is full misses the event.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan Event[T]]struct{}
	closed chan struct{}
	buffer int
}

// NewBroker returns a broker with the default per-subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer returns a broker whose subscriptions buffer size events.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	if size < 0 {
		size = 0
	}
	return &Broker[T]{
		subs:   make(map[chan Event[T]]struct{}),
		closed: make(chan struct{}),
		buffer: size,
	}
}

// Subscribe registers a new subscription that lives until ctx is done or the
// broker is closed. A closed broker returns an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	ch := make(chan Event[T], b.buffer)
	b.subs[ch] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.closed:
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}()

	return ch
}

// Publish sends payload to all subscribers.
func (b *Broker[T]) Publish(kind Kind, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.isClosed() {
		return
	}

	ev := Event[T]{Kind: kind, Payload: payload, At: time.Now()}
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close closes every subscription. Further publishes are dropped.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed() {
		return
	}
	close(b.closed)
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// SubscriberCount reports the number of live subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broker[T]) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}
