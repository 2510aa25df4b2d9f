package worker

import (
	"context"
	"os"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const runTimeout = 50 * time.Second

// Runner is the automation surface the worker drives. Satisfied by
// *engine.Engine.
type Runner interface {
	RunOnce(ctx context.Context, workspaceID *uuid.UUID) ([]domain.RuleOutcome, error)
}

// Worker periodically runs the automation engine across all workspaces.
// Deployments that rely on the external cron endpoint leave
// AUTOMATION_INTERVAL unset and never start it.
type Worker struct {
	runner   Runner
	logger   *zap.Logger
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewWorker reads AUTOMATION_INTERVAL (a Go duration, e.g. "5m"). A zero
// or unparsable value disables the worker.
func NewWorker(runner Runner, log *zap.Logger) *Worker {
	var interval time.Duration
	if raw := os.Getenv("AUTOMATION_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			log.Warn("invalid AUTOMATION_INTERVAL, worker disabled",
				zap.String("value", raw),
				zap.String("component", "worker"),
			)
		} else {
			interval = parsed
		}
	}

	return &Worker{
		runner:   runner,
		logger:   log,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Enabled reports whether the worker has a run interval configured.
func (w *Worker) Enabled() bool { return w.interval > 0 }

// Start launches the run loop in its own goroutine. The first cycle runs
// immediately, then once per interval until Stop.
func (w *Worker) Start() {
	if !w.Enabled() {
		w.logger.Info("automation worker disabled, relying on cron endpoint",
			zap.String("component", "worker"),
		)
		close(w.done)
		return
	}

	w.logger.Info("starting automation worker",
		zap.Duration("interval", w.interval),
		zap.String("component", "worker"),
	)
	go w.run()
}

// Stop signals the loop and waits for the in-flight cycle to finish.
func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.doWork()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.doWork()
		}
	}
}

// doWork runs one engine pass over all workspaces.
func (w *Worker) doWork() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	outcomes, err := w.runner.RunOnce(ctx, nil)
	if err != nil {
		w.logger.Error("automation cycle failed",
			zap.Error(err),
			zap.String("component", "worker"),
		)
		return
	}

	var triggered, skipped, failed int
	for _, outcome := range outcomes {
		switch outcome.Status {
		case domain.OutcomeTriggered:
			triggered++
		case domain.OutcomeSkipped:
			skipped++
		case domain.OutcomeError:
			failed++
		}
	}

	w.logger.Info("automation cycle finished",
		zap.Int("rules", len(outcomes)),
		zap.Int("triggered", triggered),
		zap.Int("skipped", skipped),
		zap.Int("errors", failed),
		zap.String("component", "worker"),
	)
}
