package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
)

// DefaultPollingInterval is the default interval between two rounds of a job.
const DefaultPollingInterval = 15 * time.Second

// Job is a unit of background work executed periodically by a Worker.
type Job interface {
	Name() string

	// Process runs one round of the job.
	Process(ctx context.Context) error

	// Shutdown is called once when the worker stops.
	Shutdown(ctx context.Context) error
}

// Worker runs a Job on every polling interval until it's shut down or the context is done.
type Worker struct {
	Job      Job
	Interval time.Duration

	quitOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

// New create new polling worker
func New(job Job, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = DefaultPollingInterval
	}
	return &Worker{
		Job:      job,
		Interval: interval,

		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (w *Worker) Shutdown() error {
	return w.ShutdownWithContext(context.Background())
}

func (w *Worker) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return w.ShutdownWithContext(ctx)
}

func (w *Worker) ShutdownWithContext(ctx context.Context) (err error) {
	w.quitOnce.Do(func() {
		close(w.quit)
		select {
		case <-w.done:
		case <-time.After(180 * time.Second):
			err = errors.Wrap(errs.Timeout, "worker shutdown timeout")
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "worker shutdown context canceled")
		}
	})
	return
}

func (w *Worker) Run(ctx context.Context) (err error) {
	defer close(w.done)

	ctx = logger.WithContext(ctx,
		slog.String("package", "worker"),
		slog.String("job", w.Job.Name()),
	)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.quit:
			logger.InfoContext(ctx, "Got quit signal, stopping worker")
			return errors.WithStack(w.shutdownJob(ctx))
		case <-ctx.Done():
			return errors.WithStack(w.shutdownJob(context.WithoutCancel(ctx)))
		case <-ticker.C:
			start := time.Now()
			if err := w.Job.Process(ctx); err != nil {
				if errors.Is(err, errs.Closed) {
					logger.InfoContext(ctx, "Job is closed, stopping worker")
					return errors.WithStack(w.shutdownJob(ctx))
				}
				logger.ErrorContext(ctx, "Worker failed while processing", err)
				return errors.Wrap(err, "process failed")
			}
			logger.DebugContext(ctx, "Waiting for next polling interval", slogx.Duration("duration", time.Since(start)))
		}
	}
}

func (w *Worker) shutdownJob(ctx context.Context) error {
	if err := w.Job.Shutdown(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to shutdown job", err)
		return errors.Wrap(err, "job shutdown failed")
	}
	return nil
}
