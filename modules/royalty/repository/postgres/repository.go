package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/internal/postgres"
	"github.com/gaze-network/royalty-registry/modules/royalty/datagateway"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/modules/royalty/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

var _ datagateway.RoyaltyDataGateway = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}

func (r *Repository) GetAsset(ctx context.Context, assetId protocol.AssetID) (*entity.Asset, error) {
	asset, err := r.queries.GetAsset(ctx, numericFromAssetId(assetId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	result, err := mapAssetModelToType(asset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse asset model")
	}
	return &result, nil
}

func (r *Repository) GetAssetsByIds(ctx context.Context, assetIds []protocol.AssetID) (map[protocol.AssetID]*entity.Asset, error) {
	if len(assetIds) == 0 {
		return map[protocol.AssetID]*entity.Asset{}, nil
	}
	assets, err := r.queries.GetAssetsByIds(ctx, lo.Map(assetIds, func(id protocol.AssetID, _ int) pgtype.Numeric {
		return numericFromAssetId(id)
	}))
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	result := make(map[protocol.AssetID]*entity.Asset, len(assets))
	for _, model := range assets {
		asset, err := mapAssetModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse asset model")
		}
		result[asset.AssetID] = &asset
	}
	return result, nil
}

func (r *Repository) GetRoyaltyHistory(ctx context.Context, assetId protocol.AssetID) ([]*entity.RoyaltyVersion, error) {
	versions, err := r.queries.GetRoyaltyHistory(ctx, numericFromAssetId(assetId))
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	result := make([]*entity.RoyaltyVersion, 0, len(versions))
	for _, model := range versions {
		version, err := mapRoyaltyVersionModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse royalty version model")
		}
		result = append(result, &version)
	}
	return result, nil
}

func (r *Repository) GetNotifications(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, error) {
	notifications, err := r.queries.GetNotifications(ctx, mapNotificationFilterToParams(filter))
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	result := make([]*entity.Notification, 0, len(notifications))
	for _, model := range notifications {
		notification, err := mapNotificationModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse notification model")
		}
		result = append(result, &notification)
	}
	return result, nil
}

func (r *Repository) GetArchiveCheckpoint(ctx context.Context) (*entity.ArchiveCheckpoint, error) {
	checkpoint, err := r.queries.GetArchiveCheckpoint(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return &entity.ArchiveCheckpoint{
		LastSequence: checkpoint.LastSequence,
		UpdatedAt:    timeFromTimestamptz(checkpoint.UpdatedAt),
	}, nil
}

func (r *Repository) CreateAsset(ctx context.Context, asset *entity.Asset) error {
	if err := r.queries.CreateAsset(ctx, mapAssetTypeToParams(*asset)); err != nil {
		if postgres.IsUniqueViolation(err) {
			return errors.Wrapf(errs.Conflict, "asset %s already exists", asset.AssetID)
		}
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) UpdateAssetRoyalty(ctx context.Context, asset *entity.Asset) error {
	affected, err := r.queries.UpdateAssetRoyalty(ctx, gen.UpdateAssetRoyaltyParams{
		AssetID:   numericFromAssetId(asset.AssetID),
		Recipient: asset.Royalty.Recipient.String(),
		Rate:      int32(asset.Royalty.Rate),
		Version:   asset.Version,
		UpdatedAt: timestamptz(asset.UpdatedAt),
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return errors.Wrapf(errs.NotFound, "asset %s", asset.AssetID)
	}
	return nil
}

func (r *Repository) CreateRoyaltyVersion(ctx context.Context, version *entity.RoyaltyVersion) error {
	if err := r.queries.CreateRoyaltyVersion(ctx, mapRoyaltyVersionTypeToParams(*version)); err != nil {
		if postgres.IsUniqueViolation(err) {
			return errors.Wrapf(errs.Conflict, "royalty version %d of asset %s already exists", version.Version, version.AssetID)
		}
		if postgres.IsForeignKeyViolation(err) {
			return errors.Wrapf(errs.NotFound, "asset %s", version.AssetID)
		}
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateNotification(ctx context.Context, notification *entity.Notification) (int64, error) {
	params, err := mapNotificationTypeToParams(*notification)
	if err != nil {
		return 0, errors.Wrap(err, "failed to map notification to params")
	}
	sequence, err := r.queries.CreateNotification(ctx, params)
	if err != nil {
		return 0, errors.Wrap(err, "error during exec")
	}
	return sequence, nil
}

func (r *Repository) SetArchiveCheckpoint(ctx context.Context, checkpoint *entity.ArchiveCheckpoint) error {
	if err := r.queries.SetArchiveCheckpoint(ctx, gen.SetArchiveCheckpointParams{
		LastSequence: checkpoint.LastSequence,
		UpdatedAt:    timestamptz(checkpoint.UpdatedAt),
	}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}
