// Package feed pushes fresh snapshots of a query result to live subscribers.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Query loads the current snapshot for a subscription.
type Query[T any] func(ctx context.Context) ([]T, error)

// Hub signals subscriptions whenever the underlying data changes.
type Hub struct {
	pollInterval time.Duration
	logger       *slog.Logger

	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*listener
	closed bool
}

type listener struct {
	signal chan struct{}
	cancel context.CancelFunc
}

// NewHub constructs Hub. A positive pollInterval also refreshes every subscription on a timer.
func NewHub(pollInterval time.Duration, logger *slog.Logger) *Hub {
	return &Hub{
		pollInterval: pollInterval,
		logger:       logger,
		subs:         make(map[uint64]*listener),
	}
}

// Notify wakes every subscription so it re-runs its query.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, l := range h.subs {
		select {
		case l.signal <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close cancels every subscription and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := h.subs
	h.subs = make(map[uint64]*listener)
	h.mu.Unlock()

	for _, l := range subs {
		l.cancel()
	}
}

func (h *Hub) register(cancel context.CancelFunc) (uint64, <-chan struct{}, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, nil, false
	}
	h.nextID++
	l := &listener{signal: make(chan struct{}, 1), cancel: cancel}
	h.subs[h.nextID] = l
	return h.nextID, l.signal, true
}

func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

// Subscription delivers snapshots until cancelled. Only the latest undelivered
// snapshot is kept, so a slow reader skips intermediate states.
type Subscription[T any] struct {
	updates chan []T
	cancel  context.CancelFunc
	done    chan struct{}
}

// Updates returns the snapshot channel. It is closed after Cancel.
func (s *Subscription[T]) Updates() <-chan []T {
	return s.updates
}

// Done is closed once the subscription has stopped.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Cancel stops the subscription and waits for its goroutine to exit. Safe to call repeatedly.
func (s *Subscription[T]) Cancel() {
	s.cancel()
	<-s.done
}

// Subscribe runs query once and delivers the result immediately, then re-runs it
// on every hub notification and poll tick until ctx ends or Cancel is called.
func Subscribe[T any](ctx context.Context, h *Hub, query Query[T]) (*Subscription[T], error) {
	initial, err := query(ctx)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	id, signal, ok := h.register(cancel)
	if !ok {
		cancel()
		return nil, context.Canceled
	}

	sub := &Subscription[T]{
		updates: make(chan []T, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	sub.updates <- initial

	go sub.run(runCtx, h, id, signal, query)
	return sub, nil
}

func (s *Subscription[T]) run(ctx context.Context, h *Hub, id uint64, signal <-chan struct{}, query Query[T]) {
	defer close(s.done)
	defer close(s.updates)
	defer h.unregister(id)

	var tick <-chan time.Time
	if h.pollInterval > 0 {
		ticker := time.NewTicker(h.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case <-signal:
		case <-tick:
		}

		snapshot, err := query(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.drain()
				return
			}
			if h.logger != nil {
				h.logger.Warn("feed refresh failed", slog.String("error", err.Error()))
			}
			continue
		}
		s.publish(snapshot)
	}
}

// publish replaces any snapshot the reader has not taken yet.
func (s *Subscription[T]) publish(snapshot []T) {
	select {
	case s.updates <- snapshot:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- snapshot
}

func (s *Subscription[T]) drain() {
	select {
	case <-s.updates:
	default:
	}
}
