package main

import (
	"log/slog"
	"time"

	"fabline/internal/bus"
	"fabline/internal/config"
	"fabline/internal/daemon"
	"fabline/internal/directory"
	"fabline/internal/logging"
	"fabline/internal/orders"
	"fabline/internal/reconcile"
	"fabline/internal/tracker"
)

// logSink bridges stage-change events onto the daemon log so every
// transition is visible even when no in-process listener is attached.
type logSink struct {
	logger *slog.Logger
}

func (s logSink) Emit(ev bus.StageChangeEvent) {
	s.logger.Info("stage change",
		logging.String(logging.FieldOrderID, ev.OrderID),
		logging.String(logging.FieldItemID, ev.ItemID),
		logging.String("stage", ev.NewStage.String()),
		logging.String("previous", ev.PreviousStage.String()),
		logging.String("next", ev.NextStage.String()))
}

func buildDaemon(cfg *config.Config, logger *slog.Logger) (*daemon.Daemon, error) {
	dir, err := directory.Open(cfg)
	if err != nil {
		return nil, err
	}

	b := bus.New(logger)
	b.AddSink(logSink{logger: logging.NewComponentLogger(logger, "events")})

	tr := tracker.New(
		orders.NewClient(cfg),
		b,
		logger,
		time.Duration(cfg.Workflow.PollInterval)*time.Second,
	)

	q := reconcile.NewQueue(
		reconcile.NewHTTPSyncer(cfg),
		logger,
		time.Duration(cfg.Workflow.RetryInterval)*time.Second,
	)

	d, err := daemon.New(cfg, logger, b, tr, q, dir)
	if err != nil {
		dir.Close()
		q.Stop()
		return nil, err
	}
	return d, nil
}
