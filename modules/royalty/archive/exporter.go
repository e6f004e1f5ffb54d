package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/datagateway"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
	"github.com/gaze-network/royalty-registry/pkg/parquetutils"
	"github.com/samber/lo"
	"github.com/xitongsys/parquet-go/source"
)

// DefaultMaxRecordsPerFile is the maximum number of notifications of an incremental archive file.
const DefaultMaxRecordsPerFile = 10_000

const pageSize = 1000

type ExportResult struct {
	Locations    []string
	Records      int
	LastSequence int64
}

// Exporter exports the notification log to parquet files.
type Exporter struct {
	dg                datagateway.RoyaltyDataGateway
	storage           Storage
	maxRecordsPerFile int32
	now               func() time.Time
}

func NewExporter(dg datagateway.RoyaltyDataGateway, storage Storage) *Exporter {
	return &Exporter{
		dg:                dg,
		storage:           storage,
		maxRecordsPerFile: DefaultMaxRecordsPerFile,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// Export archives the notifications appended since the last checkpoint, one file per
// DefaultMaxRecordsPerFile notifications, and advances the checkpoint after each file.
func (e *Exporter) Export(ctx context.Context) (*ExportResult, error) {
	ctx = logger.WithContext(ctx, slog.String("storage", e.storage.Name()))

	var lastSequence int64
	checkpoint, err := e.dg.GetArchiveCheckpoint(ctx)
	switch {
	case err == nil:
		lastSequence = checkpoint.LastSequence
	case errors.Is(err, errs.NotFound):
	default:
		return nil, errors.Wrap(err, "failed to get archive checkpoint")
	}

	result := &ExportResult{LastSequence: lastSequence}
	for {
		notifications, err := e.dg.GetNotifications(ctx, entity.NotificationFilter{
			FromSequence: result.LastSequence,
			Limit:        e.maxRecordsPerFile,
		})
		if err != nil {
			return result, errors.Wrap(err, "failed to get notifications")
		}
		if len(notifications) == 0 {
			return result, nil
		}

		from, to := notifications[0].Sequence, notifications[len(notifications)-1].Sequence
		key := fmt.Sprintf("notifications/%020d-%020d.parquet", from, to)
		location, err := e.write(ctx, key, notifications)
		if err != nil {
			return result, errors.WithStack(err)
		}
		if err := e.dg.SetArchiveCheckpoint(ctx, &entity.ArchiveCheckpoint{
			LastSequence: to,
			UpdatedAt:    e.now(),
		}); err != nil {
			return result, errors.Wrap(err, "failed to set archive checkpoint")
		}

		result.Locations = append(result.Locations, location)
		result.Records += len(notifications)
		result.LastSequence = to
		archivedNotifications.Add(float64(len(notifications)))
		logger.InfoContext(ctx, "Archived notifications",
			slogx.String("location", location),
			slogx.Int64("from_sequence", from),
			slogx.Int64("to_sequence", to),
		)

		if int32(len(notifications)) < e.maxRecordsPerFile {
			return result, nil
		}
	}
}

// ExportAll writes the whole notification log into a single file of the given key.
// The archive checkpoint is not changed.
func (e *Exporter) ExportAll(ctx context.Context, key string) (*ExportResult, error) {
	var all []*entity.Notification
	var fromSequence int64
	for {
		notifications, err := e.dg.GetNotifications(ctx, entity.NotificationFilter{
			FromSequence: fromSequence,
			Limit:        pageSize,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get notifications")
		}
		all = append(all, notifications...)
		if len(notifications) < pageSize {
			break
		}
		fromSequence = notifications[len(notifications)-1].Sequence
	}

	location, err := e.write(ctx, key, all)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result := &ExportResult{
		Locations: []string{location},
		Records:   len(all),
	}
	if len(all) > 0 {
		result.LastSequence = all[len(all)-1].Sequence
	}
	return result, nil
}

func (e *Exporter) write(ctx context.Context, key string, notifications []*entity.Notification) (string, error) {
	records := lo.Map(notifications, func(n *entity.Notification, _ int) NotificationRecord {
		return mapNotificationToRecord(n)
	})
	location, err := e.storage.Write(ctx, key, func(file source.ParquetFile) error {
		return errors.WithStack(parquetutils.WriteAll(file, records))
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to write archive file %s", key)
	}
	return location, nil
}
