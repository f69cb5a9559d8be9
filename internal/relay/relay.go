package relay

import (
	"log/slog"
	"sync"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

const defaultBuffer = 16

// OrderUpdate announces that an order changed on behalf of a session.
type OrderUpdate struct {
	OrderID int64
	Session model.Session
}

// Relay fans order updates out to in-process subscribers.
type Relay struct {
	mu     sync.RWMutex
	subs   map[uint64]chan OrderUpdate
	next   uint64
	buffer int
	closed bool
	logger *slog.Logger
}

// New creates a relay whose subscriber channels hold buffer pending updates.
func New(buffer int, logger *slog.Logger) *Relay {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Relay{
		subs:   make(map[uint64]chan OrderUpdate),
		buffer: buffer,
		logger: logger,
	}
}

// Publish delivers the update to every subscriber without blocking.
// Subscribers whose buffer is full miss the update.
func (r *Relay) Publish(update OrderUpdate) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	for id, ch := range r.subs {
		select {
		case ch <- update:
		default:
			r.logger.Warn("relay subscriber is slow, dropping update",
				slog.Uint64("subscriber", id),
				slog.Int64("order_id", update.OrderID),
			)
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func removes it
// and closes the channel; it is safe to call more than once.
func (r *Relay) Subscribe() (<-chan OrderUpdate, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan OrderUpdate, r.buffer)
	if r.closed {
		close(ch)
		return ch, func() {}
	}

	id := r.next
	r.next++
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { r.unsubscribe(id) })
	}
}

// Close closes every subscriber channel. Later publishes are ignored.
func (r *Relay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for id, ch := range r.subs {
		close(ch)
		delete(r.subs, id)
	}
}

func (r *Relay) unsubscribe(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.subs[id]; ok {
		close(ch)
		delete(r.subs, id)
	}
}
