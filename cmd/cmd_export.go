package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/internal/config"
	"github.com/gaze-network/royalty-registry/modules/royalty"
	"github.com/gaze-network/royalty-registry/modules/royalty/archive"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

type exportCmdOptions struct {
	Output   string
	S3Bucket string
	S3Prefix string
	All      bool
}

func NewExportCommand() *cobra.Command {
	opts := &exportCmdOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export royalty payment notifications to parquet files",
		Long: `Export royalty payment notifications to parquet files.
By default, only notifications appended since the last export are written and the archive checkpoint is advanced.
With --all, the whole notification log is written into a single file and the checkpoint is left untouched.`,
		Example: `royalty export --output ./archive
royalty export --all --s3 my-bucket --s3-prefix royalty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Output, "output", "", "Local directory of archive files. Overrides `modules.royalty.archive.output`")
	flags.StringVar(&opts.S3Bucket, "s3", "", "S3 bucket of archive files. Overrides `modules.royalty.archive.s3.bucket`")
	flags.StringVar(&opts.S3Prefix, "s3-prefix", "", "Key prefix of archive files in the S3 bucket")
	flags.BoolVar(&opts.All, "all", false, "Export the whole notification log into a single file")

	return cmd
}

func exportHandler(opts *exportCmdOptions, cmd *cobra.Command, _ []string) (err error) {
	conf := config.Load()
	ctx := logger.WithContext(cmd.Context(), slog.String("command", "export"))

	archiveConf := conf.Modules.Royalty.Archive
	if opts.Output != "" {
		archiveConf.Output = opts.Output
		archiveConf.S3.Bucket = ""
	}
	if opts.S3Bucket != "" {
		archiveConf.S3.Bucket = opts.S3Bucket
	}
	if opts.S3Prefix != "" {
		archiveConf.S3.Prefix = opts.S3Prefix
	}

	var cleanupFuncs []func(context.Context) error
	defer func() {
		for i := len(cleanupFuncs) - 1; i >= 0; i-- {
			if cleanupErr := cleanupFuncs[i](context.Background()); cleanupErr != nil {
				logger.WarnContext(ctx, "Failed to clean up resources", slogx.Error(cleanupErr))
			}
		}
	}()

	dg, err := royalty.NewDataGateway(ctx, conf.Modules.Royalty.Database, conf.Modules.Royalty.Postgres, &cleanupFuncs)
	if err != nil {
		return errors.WithStack(err)
	}
	storage, err := archive.NewStorage(ctx, archiveConf)
	if err != nil {
		return errors.Wrap(err, "can't create archive storage")
	}
	exporter := archive.NewExporter(dg, storage)

	var result *archive.ExportResult
	if opts.All {
		key := fmt.Sprintf("notifications/full-%s.parquet", time.Now().UTC().Format("20060102T150405Z"))
		result, err = exporter.ExportAll(ctx, key)
	} else {
		result, err = exporter.Export(ctx)
	}
	if err != nil {
		return errors.Wrap(err, "failed to export notifications")
	}

	logger.InfoContext(ctx, "Exported notifications",
		slog.Int("records", result.Records),
		slog.Int64("last_sequence", result.LastSequence),
		slog.Int("files", len(result.Locations)),
	)
	for _, location := range result.Locations {
		fmt.Fprintln(cmd.OutOrStdout(), location)
	}
	return nil
}
