package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
)

// CreateAsset registers the asset with its royalty. The royalty is validated here and never at query time.
func (u *Usecase) CreateAsset(ctx context.Context, creator protocol.Address, assetId protocol.AssetID, royalty protocol.RoyaltyInfo) (*entity.Asset, error) {
	if err := royalty.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	now := u.now()
	asset := &entity.Asset{
		AssetID:   assetId,
		Creator:   creator,
		Royalty:   royalty,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := u.dg.BeginRoyaltyTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	if err := tx.CreateAsset(ctx, asset); err != nil {
		return nil, errors.Wrap(err, "failed to create asset")
	}
	if err := tx.CreateRoyaltyVersion(ctx, &entity.RoyaltyVersion{
		AssetID:   assetId,
		Version:   asset.Version,
		Royalty:   royalty,
		UpdatedBy: creator,
		CreatedAt: now,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to create royalty version")
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	assetsCreated.Inc()
	logger.InfoContext(ctx, "Created asset",
		slogx.Stringer("asset_id", assetId),
		slogx.Stringer("recipient", royalty.Recipient),
		slogx.Uint64("rate", uint64(royalty.Rate)),
	)
	return asset, nil
}

// UpdateRoyalty replaces the royalty of a mutable asset. Only the asset creator may update it.
// Every update bumps the asset version and is kept in the royalty history.
func (u *Usecase) UpdateRoyalty(ctx context.Context, caller protocol.Address, assetId protocol.AssetID, royalty protocol.RoyaltyInfo) (*entity.Asset, error) {
	if !u.mutable {
		return nil, errors.Wrap(errs.Unsupported, "royalty updates are disabled")
	}
	if err := royalty.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	tx, err := u.dg.BeginRoyaltyTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	asset, err := tx.GetAsset(ctx, assetId)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errors.Wrapf(errs.NotFound, "asset %s not found", assetId)
		}
		return nil, errors.Wrap(err, "failed to get asset")
	}
	if caller.IsZero() || caller != asset.Creator {
		return nil, errors.Wrapf(errs.Unauthorized, "caller %s is not the creator of asset %s", caller, assetId)
	}

	now := u.now()
	asset.Royalty = royalty
	asset.Version++
	asset.UpdatedAt = now
	if err := tx.UpdateAssetRoyalty(ctx, asset); err != nil {
		return nil, errors.Wrap(err, "failed to update asset royalty")
	}
	if err := tx.CreateRoyaltyVersion(ctx, &entity.RoyaltyVersion{
		AssetID:   assetId,
		Version:   asset.Version,
		Royalty:   royalty,
		UpdatedBy: caller,
		CreatedAt: now,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to create royalty version")
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	royaltyUpdates.Inc()
	logger.InfoContext(ctx, "Updated asset royalty",
		slogx.Stringer("asset_id", assetId),
		slogx.Int64("version", asset.Version),
	)
	return asset, nil
}

// RoyaltyHistory returns every royalty version of the asset, oldest first.
func (u *Usecase) RoyaltyHistory(ctx context.Context, assetId protocol.AssetID) ([]*entity.RoyaltyVersion, error) {
	if _, err := u.dg.GetAsset(ctx, assetId); err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errors.Wrapf(errs.NotFound, "asset %s not found", assetId)
		}
		return nil, errors.Wrap(err, "failed to get asset")
	}
	history, err := u.dg.GetRoyaltyHistory(ctx, assetId)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get royalty history")
	}
	return history, nil
}
