package test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// FulfillmentFacadeStub mimics worker interactions with the store facade.
type FulfillmentFacadeStub struct {
	Orders   [][]model.Order
	OrdersFn func(context.Context, int) ([]model.Order, error)
	LinksFn  func(model.Order) map[string]string
	AttachFn func(context.Context, string, map[string]string) error
	Attached map[string]map[string]string
	Attempts int32

	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *FulfillmentFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *FulfillmentFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersAwaitingFulfillment returns batches from the configured queue.
func (s *FulfillmentFacadeStub) OrdersAwaitingFulfillment(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	return nil, nil
}

// IssueDownloadLinks returns one fake link per item.
func (s *FulfillmentFacadeStub) IssueDownloadLinks(order model.Order) map[string]string {
	if s.LinksFn != nil {
		return s.LinksFn(order)
	}
	links := make(map[string]string, len(order.Items))
	for _, item := range order.Items {
		links[item.BeatID] = "https://example.com/dl/" + order.ID + "/" + item.BeatID
	}
	return links
}

// AttachDownloadLinks records attached links.
func (s *FulfillmentFacadeStub) AttachDownloadLinks(ctx context.Context, orderID string, links map[string]string) error {
	atomic.AddInt32(&s.Attempts, 1)
	if s.AttachFn != nil {
		return s.AttachFn(ctx, orderID, links)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Attached == nil {
		s.Attached = make(map[string]map[string]string)
	}
	s.Attached[orderID] = links
	return nil
}
