package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fabline/internal/logging"
)

// Queue holds change records until the system of record acknowledges them.
//
// A record moves Detected -> Pending -> Synced; a failed attempt returns it
// to Pending. There is no terminal failure state: records stay pending until
// synced or the process ends. The retry timer is armed while the pending
// collection is non-empty and disarmed when it empties.
type Queue struct {
	syncer   Syncer
	logger   *slog.Logger
	interval time.Duration

	mu       sync.Mutex
	pending  []ChangeRecord
	inflight map[uint64]struct{}
	timerUp  bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewQueue constructs a reconciliation queue. The interval governs the fixed
// retry cadence; values <= 0 fall back to 30 seconds.
func NewQueue(syncer Syncer, logger *slog.Logger, interval time.Duration) *Queue {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		syncer:   syncer,
		logger:   logging.NewComponentLogger(logger, "reconcile"),
		interval: interval,
		inflight: make(map[uint64]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Enqueue appends the change to the pending collection and immediately
// attempts synchronization. Failures are logged and kept pending for the
// retry timer; they are never raised to the caller.
func (q *Queue) Enqueue(ctx context.Context, change ChangeRecord) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, change)
	q.mu.Unlock()

	q.attemptPending(ctx, change)
	q.reconcileTimer()
}

// RetryAll attempts synchronization for a snapshot of the pending
// collection. Successes are removed; failures remain for the next cycle.
// Calling it with nothing pending is a no-op.
func (q *Queue) RetryAll(ctx context.Context) {
	if q == nil {
		return
	}
	q.mu.Lock()
	snapshot := append([]ChangeRecord(nil), q.pending...)
	q.mu.Unlock()

	for _, change := range snapshot {
		q.attemptPending(ctx, change)
	}
	q.reconcileTimer()
}

// Pending returns a copy of the records still awaiting acknowledgement.
func (q *Queue) Pending() []ChangeRecord {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ChangeRecord(nil), q.pending...)
}

// PendingCount reports how many changes await acknowledgement.
func (q *Queue) PendingCount() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stop cancels the retry timer and waits for it to exit. Pending records are
// dropped with the process; the queue is deliberately not durable.
func (q *Queue) Stop() {
	if q == nil {
		return
	}
	q.cancel()
	q.wg.Wait()
}

// attemptPending runs one sync attempt for a record that is still pending,
// removing it on success. The record is marked in-flight for the duration so
// an overlapping pass (the retry ticker firing during an Enqueue attempt, or
// a manual RetryAll) cannot post the same change twice.
func (q *Queue) attemptPending(ctx context.Context, change ChangeRecord) {
	q.mu.Lock()
	if _, busy := q.inflight[change.Seq]; busy {
		q.mu.Unlock()
		return
	}
	stillPending := false
	for _, rec := range q.pending {
		if rec.Seq == change.Seq {
			stillPending = true
			break
		}
	}
	if !stillPending {
		q.mu.Unlock()
		return
	}
	q.inflight[change.Seq] = struct{}{}
	q.mu.Unlock()

	synced := q.attempt(ctx, change)

	q.mu.Lock()
	delete(q.inflight, change.Seq)
	q.mu.Unlock()

	if synced {
		q.remove(change.Seq)
	}
}

func (q *Queue) attempt(ctx context.Context, change ChangeRecord) bool {
	requestID := uuid.NewString()
	err := q.syncer.Sync(ctx, change)
	if err != nil {
		q.logger.Warn("change sync failed; will retry",
			logging.String(logging.FieldRequestID, requestID),
			logging.String("subject_id", change.SubjectID),
			logging.String("field", string(change.Field)),
			logging.Uint64("seq", change.Seq),
			logging.Error(err),
		)
		return false
	}
	q.logger.Info("change synced",
		logging.String(logging.FieldRequestID, requestID),
		logging.String("subject_id", change.SubjectID),
		logging.String("field", string(change.Field)),
		logging.Uint64("seq", change.Seq),
	)
	return true
}

func (q *Queue) remove(seq uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, change := range q.pending {
		if change.Seq == seq {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// reconcileTimer arms the retry loop when work is pending and lets it wind
// down when the collection empties.
func (q *Queue) reconcileTimer() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 || q.timerUp {
		return
	}
	q.timerUp = true
	q.wg.Add(1)
	go q.retryLoop()
}

func (q *Queue) retryLoop() {
	defer q.wg.Done()
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-q.ctx.Done():
			q.mu.Lock()
			q.timerUp = false
			q.mu.Unlock()
			return
		case <-ticker.C:
			q.mu.Lock()
			snapshot := append([]ChangeRecord(nil), q.pending...)
			q.mu.Unlock()

			for _, change := range snapshot {
				q.attemptPending(q.ctx, change)
			}

			q.mu.Lock()
			if len(q.pending) == 0 {
				q.timerUp = false
				q.mu.Unlock()
				return
			}
			q.mu.Unlock()
		}
	}
}
