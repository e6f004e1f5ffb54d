package royalty

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/core"
	"github.com/gaze-network/royalty-registry/core/worker"
	"github.com/gaze-network/royalty-registry/internal/config"
	"github.com/gaze-network/royalty-registry/internal/postgres"
	"github.com/gaze-network/royalty-registry/internal/subscription"
	royaltyapi "github.com/gaze-network/royalty-registry/modules/royalty/api"
	"github.com/gaze-network/royalty-registry/modules/royalty/archive"
	royaltydatagateway "github.com/gaze-network/royalty-registry/modules/royalty/datagateway"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	royaltymemory "github.com/gaze-network/royalty-registry/modules/royalty/repository/memory"
	royaltypostgres "github.com/gaze-network/royalty-registry/modules/royalty/repository/postgres"
	royaltyusecase "github.com/gaze-network/royalty-registry/modules/royalty/usecase"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

func New(injector do.Injector) (core.Worker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	var cleanupFuncs []func(context.Context) error
	royaltyDg, err := NewDataGateway(ctx, conf.Modules.Royalty.Database, conf.Modules.Royalty.Postgres, &cleanupFuncs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	broker := subscription.NewBroker[entity.Notification]()
	cleanupFuncs = append(cleanupFuncs, broker.Close)

	royaltyUsecase, err := royaltyusecase.New(royaltyDg, broker, conf.Modules.Royalty)
	if err != nil {
		return nil, errors.Wrap(err, "invalid royalty configuration")
	}

	// Mount API
	apiHandlers := lo.Uniq(conf.Modules.Royalty.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			royaltyHTTPHandler := royaltyapi.NewHTTPHandler(royaltyUsecase)
			if err := royaltyHTTPHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount Royalty API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	var archiveWorker *worker.Worker
	if conf.Modules.Royalty.Archive.Enabled {
		storage, err := archive.NewStorage(ctx, conf.Modules.Royalty.Archive)
		if err != nil {
			return nil, errors.Wrap(err, "can't create archive storage")
		}
		archiveWorker = worker.New(archive.NewJob(archive.NewExporter(royaltyDg, storage)), conf.Modules.Royalty.Archive.Interval)
		logger.InfoContext(ctx, "Enabled notification archive", "storage", storage.Name())
	}

	return &Module{
		archiveWorker: archiveWorker,
		cleanupFuncs:  cleanupFuncs,
	}, nil
}

// NewDataGateway creates the royalty datagateway of the given database. Cleanup funcs of the
// created resources are appended to cleanupFuncs.
func NewDataGateway(ctx context.Context, database string, pgConf postgres.Config, cleanupFuncs *[]func(context.Context) error) (royaltydatagateway.RoyaltyDataGateway, error) {
	switch strings.ToLower(database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, pgConf)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for royalty registry")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		*cleanupFuncs = append(*cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		return royaltypostgres.NewRepository(pg), nil
	case "memory":
		logger.WarnContext(ctx, "Using in-memory database for royalty registry, data will be lost on restart")
		return royaltymemory.NewRepository(), nil
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for royalty registry is not supported", database)
	}
}
