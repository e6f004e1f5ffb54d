package archive

import (
	"context"

	"github.com/gaze-network/royalty-registry/core/worker"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
)

var _ worker.Job = (*Job)(nil)

// Job runs an incremental export on every worker round.
type Job struct {
	exporter *Exporter
}

func NewJob(exporter *Exporter) *Job {
	return &Job{exporter: exporter}
}

func (j *Job) Name() string {
	return "royalty_archive"
}

func (j *Job) Process(ctx context.Context) error {
	result, err := j.exporter.Export(ctx)
	if err != nil {
		// retried on the next round from the last checkpoint
		var exported int
		if result != nil {
			exported = len(result.Locations)
		}
		logger.ErrorContext(ctx, "Failed to archive notifications", err, slogx.Int("exported_files", exported))
		return nil
	}
	if result.Records > 0 {
		logger.InfoContext(ctx, "Archive round completed",
			slogx.Int("records", result.Records),
			slogx.Int64("last_sequence", result.LastSequence),
		)
	}
	return nil
}

func (j *Job) Shutdown(context.Context) error {
	return nil
}
