package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"fabline/internal/bus"
	"fabline/internal/config"
	"fabline/internal/directory"
	"fabline/internal/logging"
	"fabline/internal/reconcile"
	"fabline/internal/tracker"
)

// Daemon coordinates the background services and enforces single-instance
// execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	bus       *bus.Bus
	tracker   *tracker.Tracker
	queue     *reconcile.Queue
	directory *directory.Store

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running        bool
	TrackedOrders  []string
	PendingChanges int
	RecentEvents   []bus.StageChangeEvent
	LockFilePath   string
	DirectoryPath  string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger, b *bus.Bus, tr *tracker.Tracker, q *reconcile.Queue, dir *directory.Store) (*Daemon, error) {
	if cfg == nil || b == nil || tr == nil || q == nil || dir == nil {
		return nil, errors.New("daemon requires config, bus, tracker, queue, and directory store")
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "fablined.lock")
	return &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		bus:       b,
		tracker:   tr,
		queue:     q,
		directory: dir,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// Start launches the tracker and acquires the daemon lock.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another fabline daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.tracker.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return fmt.Errorf("start tracker: %w", err)
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("fabline daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.tracker.Stop()
	d.queue.Stop()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("fabline daemon stopped")
}

// Close releases resources; safe to call after Stop.
func (d *Daemon) Close() {
	d.Stop()
	if err := d.directory.Close(); err != nil {
		d.logger.Warn("close directory store", logging.Error(err))
	}
}

// Running reports whether the daemon is processing.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Tracker exposes the order tracker for control surfaces.
func (d *Daemon) Tracker() *tracker.Tracker {
	return d.tracker
}

// Queue exposes the reconciliation queue for control surfaces.
func (d *Daemon) Queue() *reconcile.Queue {
	return d.queue
}

// Directory exposes the employee snapshot store for control surfaces.
func (d *Daemon) Directory() *directory.Store {
	return d.directory
}

// Status reports current runtime information.
func (d *Daemon) Status() Status {
	return Status{
		Running:        d.running.Load(),
		TrackedOrders:  d.tracker.Tracked(),
		PendingChanges: d.queue.PendingCount(),
		RecentEvents:   d.bus.Recent(),
		LockFilePath:   d.lockPath,
		DirectoryPath:  d.directory.Path(),
	}
}
