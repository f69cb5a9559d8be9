package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/relay"
)

// SyncFacade exposes the subset of application functionality required by the worker.
type SyncFacade interface {
	SessionsForSync(ctx context.Context, limit int) ([]model.Session, error)
	RefreshOrder(ctx context.Context, session model.Session, orderID int64) error
	RefreshWarehouse(ctx context.Context, session model.Session) error
}

// UpdateSource delivers order updates announced inside the process.
type UpdateSource interface {
	Subscribe() (<-chan relay.OrderUpdate, func())
}

type syncJob struct {
	session model.Session
	orderID int64
	full    bool
}

// OrderSync keeps warehouse order snapshots fresh. Relay updates trigger a
// single order refresh, the ticker reloads every registered warehouse.
type OrderSync struct {
	facade       SyncFacade
	source       UpdateSource
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan syncJob
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrderSync constructs snapshot sync worker pool.
func NewOrderSync(facade SyncFacade, source UpdateSource, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OrderSync {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &OrderSync{
		facade:       facade,
		source:       source,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches background processing. Calling Start on a running worker is a no-op.
func (s *OrderSync) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.jobs = make(chan syncJob, s.batchSize*s.workers)

	var updates <-chan relay.OrderUpdate
	unsubscribe := func() {}
	if s.source != nil {
		updates, unsubscribe = s.source.Subscribe()
	}

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, s.jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, s.jobs, updates, unsubscribe)
}

// Stop waits for all workers to finish.
func (s *OrderSync) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *OrderSync) dispatch(ctx context.Context, jobs chan<- syncJob, updates <-chan relay.OrderUpdate, unsubscribe func()) {
	defer s.wg.Done()
	defer close(jobs)
	defer unsubscribe()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			s.enqueue(ctx, jobs, syncJob{session: update.Session, orderID: update.OrderID})
		case <-ticker.C:
			s.scheduleWarehouses(ctx, jobs)
		}
	}
}

func (s *OrderSync) scheduleWarehouses(ctx context.Context, jobs chan<- syncJob) {
	sessions, err := s.facade.SessionsForSync(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch sessions for sync failed", slog.String("error", err.Error()))
		return
	}
	for _, session := range sessions {
		if !s.enqueue(ctx, jobs, syncJob{session: session, full: true}) {
			return
		}
	}
}

func (s *OrderSync) enqueue(ctx context.Context, jobs chan<- syncJob, job syncJob) bool {
	select {
	case <-ctx.Done():
		return false
	case jobs <- job:
		return true
	}
}

func (s *OrderSync) worker(ctx context.Context, jobs <-chan syncJob) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			s.handle(ctx, job)
		}
	}
}

func (s *OrderSync) handle(ctx context.Context, job syncJob) {
	logger := s.logger.With(slog.Int64("warehouse_id", job.session.WarehouseID))
	if job.full {
		if err := s.facade.RefreshWarehouse(ctx, job.session); err != nil {
			logger.Error("warehouse snapshot refresh failed", slog.String("error", err.Error()))
			return
		}
		logger.Debug("warehouse snapshot refreshed")
		return
	}

	if err := s.facade.RefreshOrder(ctx, job.session, job.orderID); err != nil {
		logger.Error("order snapshot refresh failed",
			slog.Int64("order_id", job.orderID),
			slog.String("error", err.Error()),
		)
	}
}
