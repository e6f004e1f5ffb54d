package datagateway

import (
	"context"

	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
)

type RoyaltyDataGateway interface {
	RoyaltyReaderDataGateway
	RoyaltyWriterDataGateway

	// BeginRoyaltyTx returns a new RoyaltyDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginRoyaltyTx(ctx context.Context) (RoyaltyDataGatewayWithTx, error)
}

type RoyaltyDataGatewayWithTx interface {
	RoyaltyDataGateway
	Tx
}

type RoyaltyReaderDataGateway interface {
	// GetAsset returns the asset. Returns errs.NotFound if the asset doesn't exist.
	GetAsset(ctx context.Context, assetId protocol.AssetID) (*entity.Asset, error)
	// GetAssetsByIds returns the existing assets of the given ids. Missing assets are absent from the result.
	GetAssetsByIds(ctx context.Context, assetIds []protocol.AssetID) (map[protocol.AssetID]*entity.Asset, error)
	// GetRoyaltyHistory returns all royalty versions of the asset, oldest first.
	GetRoyaltyHistory(ctx context.Context, assetId protocol.AssetID) ([]*entity.RoyaltyVersion, error)
	// GetNotifications returns notifications matching the filter ordered by sequence. Use limit = -1 as no limit.
	GetNotifications(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, error)
	// GetArchiveCheckpoint returns the archive checkpoint. Returns errs.NotFound if nothing was archived yet.
	GetArchiveCheckpoint(ctx context.Context) (*entity.ArchiveCheckpoint, error)
}

type RoyaltyWriterDataGateway interface {
	// CreateAsset creates the asset. Returns errs.Conflict if it already exists.
	CreateAsset(ctx context.Context, asset *entity.Asset) error
	// UpdateAssetRoyalty sets the royalty and version of an existing asset. Returns errs.NotFound if the asset doesn't exist.
	UpdateAssetRoyalty(ctx context.Context, asset *entity.Asset) error
	CreateRoyaltyVersion(ctx context.Context, version *entity.RoyaltyVersion) error
	// CreateNotification appends the notification and returns its sequence.
	CreateNotification(ctx context.Context, notification *entity.Notification) (int64, error)
	SetArchiveCheckpoint(ctx context.Context, checkpoint *entity.ArchiveCheckpoint) error
}
