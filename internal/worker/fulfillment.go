package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/beatstore/internal/domain/model"
)

// FulfillmentFacade exposes the subset of application functionality required by the worker.
type FulfillmentFacade interface {
	OrdersAwaitingFulfillment(ctx context.Context, limit int) ([]model.Order, error)
	IssueDownloadLinks(order model.Order) map[string]string
	AttachDownloadLinks(ctx context.Context, orderID string, links map[string]string) error
}

// Fulfiller attaches signed download links to completed orders using a pool of workers.
type Fulfiller struct {
	facade       FulfillmentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs     chan model.Order
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewFulfiller constructs the fulfillment worker pool.
func NewFulfiller(facade FulfillmentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Fulfiller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Fulfiller{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
		inFlight:     make(map[string]struct{}),
	}
}

// Start launches background processing.
func (f *Fulfiller) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	for i := 0; i < f.workers; i++ {
		f.wg.Add(1)
		go f.worker(runCtx)
	}

	f.wg.Add(1)
	go f.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (f *Fulfiller) Stop() {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mu.Unlock()

	f.wg.Wait()
}

func (f *Fulfiller) dispatch(ctx context.Context) {
	defer f.wg.Done()
	defer close(f.jobs)
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.fetchAndDispatch(ctx)
		}
	}
}

func (f *Fulfiller) fetchAndDispatch(ctx context.Context) {
	orders, err := f.facade.OrdersAwaitingFulfillment(ctx, f.batchSize)
	if err != nil {
		f.logger.Error("fetch orders awaiting fulfillment failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		if !f.claim(order.ID) {
			continue
		}
		select {
		case <-ctx.Done():
			f.release(order.ID)
			return
		case f.jobs <- order:
		}
	}
}

// claim marks the order as queued; an order still being fulfilled is not dispatched again.
func (f *Fulfiller) claim(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.inFlight[id]; busy {
		return false
	}
	f.inFlight[id] = struct{}{}
	return true
}

func (f *Fulfiller) release(id string) {
	f.mu.Lock()
	delete(f.inFlight, id)
	f.mu.Unlock()
}

func (f *Fulfiller) worker(ctx context.Context) {
	defer f.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-f.jobs:
			if !ok {
				return
			}
			f.handleOrder(ctx, order)
		}
	}
}

func (f *Fulfiller) handleOrder(ctx context.Context, order model.Order) {
	defer f.release(order.ID)

	links := f.facade.IssueDownloadLinks(order)
	if len(links) == 0 {
		f.logger.Warn("order has nothing to deliver", slog.String("order", order.Number))
		return
	}

	if err := f.facade.AttachDownloadLinks(ctx, order.ID, links); err != nil {
		f.logger.Error("attach download links failed", slog.String("order", order.Number), slog.String("error", err.Error()))
		return
	}
	f.logger.Info("order fulfilled", slog.String("order", order.Number), slog.Int("downloads", len(links)))
}
