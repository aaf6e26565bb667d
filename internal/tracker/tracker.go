package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"fabline/internal/bus"
	"fabline/internal/ledger"
	"fabline/internal/logging"
	"fabline/internal/orders"
	"fabline/internal/pipeline"
	"fabline/internal/progress"
)

// Fetcher abstracts the order backend read needed by the tracker.
type Fetcher interface {
	GetOrder(ctx context.Context, orderID string) (*orders.Order, error)
}

// Tracker watches a set of orders, re-derives item stages on every refresh,
// and publishes stage-change events on the bus.
//
// Each refresh is an independent eventually-consistent snapshot: passes
// re-fetch the ledger and there is no causal ordering across passes. A
// per-order generation counter prevents a slow fetch from overwriting state
// a newer refresh already landed.
type Tracker struct {
	fetcher      Fetcher
	bus          *bus.Bus
	logger       *slog.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	tracked map[string]*orderState
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type orderState struct {
	generation uint64
	// lastStages holds the most recently observed stage per item; nil until
	// the first successful refresh so initial observations do not publish.
	lastStages map[string]pipeline.Stage
}

// New constructs a tracker.
func New(fetcher Fetcher, b *bus.Bus, logger *slog.Logger, pollInterval time.Duration) *Tracker {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	return &Tracker{
		fetcher:      fetcher,
		bus:          b,
		logger:       logging.NewComponentLogger(logger, "tracker"),
		pollInterval: pollInterval,
		tracked:      make(map[string]*orderState),
	}
}

// Track adds an order to the watch set. Tracking the same order twice is a
// no-op.
func (t *Tracker) Track(orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.tracked[orderID]; !ok {
		t.tracked[orderID] = &orderState{}
	}
}

// Untrack removes an order from the watch set.
func (t *Tracker) Untrack(orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tracked, orderID)
}

// Tracked returns the sorted watch set.
func (t *Tracker) Tracked() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.tracked))
	for id := range t.tracked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Start begins the background poll loop.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return errors.New("tracker already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.running = true
	t.cancel = cancel
	t.wg.Add(1)
	t.mu.Unlock()

	go t.run(runCtx)
	return nil
}

// Stop terminates the poll loop and waits for it to exit.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	cancel := t.cancel
	t.running = false
	t.cancel = nil
	t.mu.Unlock()

	cancel()
	t.wg.Wait()
}

func (t *Tracker) run(ctx context.Context) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, orderID := range t.Tracked() {
				t.Refresh(ctx, orderID)
			}
		}
	}
}

// Refresh re-fetches one order and publishes stage changes. Fetch failures
// degrade silently apart from a log line; stage state is left untouched so
// the next pass can catch up.
func (t *Tracker) Refresh(ctx context.Context, orderID string) {
	gen, ok := t.beginRefresh(orderID)
	if !ok {
		return
	}

	order, err := t.fetcher.GetOrder(ctx, orderID)
	if err != nil {
		t.logger.Warn("order refresh failed; keeping last known stages",
			logging.String(logging.FieldOrderID, orderID),
			logging.Error(err),
		)
		return
	}
	if order == nil {
		// No data: treated as "no progress yet", not an error.
		return
	}

	stages := pipeline.DeriveAll(order.ItemIDs(), ledger.Normalize(order.Ledger))
	t.applyRefresh(orderID, gen, stages)
}

// Progress computes the on-demand completion summary for one order. Fetch
// failure or absence degrades to an empty summary for the order.
func (t *Tracker) Progress(ctx context.Context, orderID string) progress.Summary {
	order, err := t.fetcher.GetOrder(ctx, orderID)
	if err != nil {
		t.logger.Warn("progress fetch failed; reporting defaults",
			logging.String(logging.FieldOrderID, orderID),
			logging.Error(err),
		)
		return progress.Summary{OrderID: orderID, PerItem: map[string]progress.ItemProgress{}}
	}
	if order == nil {
		return progress.Summary{OrderID: orderID, PerItem: map[string]progress.ItemProgress{}}
	}

	records := ledger.Normalize(order.Ledger)
	items := make(map[string]progress.ItemProgress, len(order.Items))
	for _, item := range order.Items {
		items[item.ID] = progress.ItemProgress{
			Stage:    pipeline.Derive(item.ID, records),
			Terminal: item.Terminal(),
		}
	}
	return progress.Aggregate(order.ID, items)
}

// beginRefresh bumps the order's generation and returns it. A refresh of an
// untracked order is skipped.
func (t *Tracker) beginRefresh(orderID string) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.tracked[orderID]
	if !ok {
		return 0, false
	}
	state.generation++
	return state.generation, true
}

// applyRefresh records the derived stages and publishes changes, unless a
// newer refresh has already landed for the order.
func (t *Tracker) applyRefresh(orderID string, gen uint64, stages map[string]pipeline.Stage) {
	t.mu.Lock()
	state, ok := t.tracked[orderID]
	if !ok || state.generation != gen {
		t.mu.Unlock()
		return
	}
	previous := state.lastStages
	state.lastStages = stages
	t.mu.Unlock()

	if previous == nil {
		return
	}
	for itemID, stage := range stages {
		prev, seen := previous[itemID]
		if seen && prev == stage {
			continue
		}
		if !seen {
			prev = pipeline.DefaultStage
			if prev == stage {
				continue
			}
		}
		t.bus.Publish(bus.StageChangeEvent{
			OrderID:       orderID,
			ItemID:        itemID,
			NewStage:      stage,
			PreviousStage: prev,
			NextStage:     stage.Next(),
		})
	}
}
