package royalty

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/core"
	"github.com/gaze-network/royalty-registry/core/worker"
	"github.com/gaze-network/royalty-registry/pkg/logger"
)

var _ core.Worker = (*Module)(nil)

// Module is the running royalty registry. The registry itself is served by the HTTP API,
// Run only drives the background archive worker (if enabled) until the context is done.
type Module struct {
	archiveWorker *worker.Worker
	running       atomic.Bool
	cleanupFuncs  []func(context.Context) error
	cleanupOnce   sync.Once
	cleanupErr    error
}

func (m *Module) Run(ctx context.Context) error {
	if m.archiveWorker == nil {
		<-ctx.Done()
		return nil
	}
	m.running.Store(true)
	if err := m.archiveWorker.Run(ctx); err != nil {
		return errors.Wrap(err, "archive worker failed")
	}
	return nil
}

// Shutdown stops the archive worker, closes every live event stream and releases the database.
func (m *Module) Shutdown(ctx context.Context) error {
	m.cleanupOnce.Do(func() {
		var errList []error
		if m.archiveWorker != nil && m.running.Load() {
			if err := m.archiveWorker.ShutdownWithContext(ctx); err != nil {
				errList = append(errList, errors.Wrap(err, "failed to stop archive worker"))
			}
		}
		for i := len(m.cleanupFuncs) - 1; i >= 0; i-- {
			if err := m.cleanupFuncs[i](ctx); err != nil {
				errList = append(errList, err)
			}
		}
		m.cleanupErr = errors.Join(errList...)
		if m.cleanupErr != nil {
			logger.ErrorContext(ctx, "Failed to shutdown royalty module", m.cleanupErr)
		}
	})
	return errors.WithStack(m.cleanupErr)
}
