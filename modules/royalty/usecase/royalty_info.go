package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/config"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"golang.org/x/sync/errgroup"
)

const (
	MaxBatchSize          = 100
	batchQueryConcurrency = 8
)

// RoyaltyInfo returns the current royalty of the asset. It never mutates state.
// An unknown asset fails with errs.NotFound, or answers zero royalty under the `zero` policy.
func (u *Usecase) RoyaltyInfo(ctx context.Context, assetId protocol.AssetID) (protocol.RoyaltyInfo, error) {
	queries.WithLabelValues("royalty_info").Inc()
	return u.royaltyInfo(ctx, assetId)
}

func (u *Usecase) royaltyInfo(ctx context.Context, assetId protocol.AssetID) (protocol.RoyaltyInfo, error) {
	asset, err := u.dg.GetAsset(ctx, assetId)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			if u.unknownAsset == config.UnknownAssetZero {
				return protocol.RoyaltyInfo{}, nil
			}
			return protocol.RoyaltyInfo{}, errors.Wrapf(errs.NotFound, "asset %s not found", assetId)
		}
		return protocol.RoyaltyInfo{}, errors.Wrap(err, "failed to get asset")
	}
	return asset.Royalty, nil
}

// RoyaltyInfoBatch returns the royalties of up to MaxBatchSize assets, in the order of the given ids.
func (u *Usecase) RoyaltyInfoBatch(ctx context.Context, assetIds []protocol.AssetID) ([]protocol.RoyaltyInfo, error) {
	if len(assetIds) > MaxBatchSize {
		return nil, errors.Wrapf(errs.InvalidArgument, "cannot query more than %d asset ids", MaxBatchSize)
	}
	queries.WithLabelValues("royalty_info_batch").Inc()

	results := make([]protocol.RoyaltyInfo, len(assetIds))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(batchQueryConcurrency)
	for i, assetId := range assetIds {
		group.Go(func() error {
			info, err := u.royaltyInfo(groupCtx, assetId)
			if err != nil {
				return errors.WithStack(err)
			}
			results[i] = info
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}
	return results, nil
}

type QuoteResult struct {
	AssetID   protocol.AssetID
	Royalty   protocol.RoyaltyInfo
	SalePrice protocol.Amount
	Owed      protocol.Amount
}

// Quote returns the royalty owed for selling the asset at the given price.
func (u *Usecase) Quote(ctx context.Context, assetId protocol.AssetID, salePrice protocol.Amount) (*QuoteResult, error) {
	queries.WithLabelValues("quote").Inc()
	info, err := u.royaltyInfo(ctx, assetId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	owed, err := info.Owed(salePrice)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &QuoteResult{
		AssetID:   assetId,
		Royalty:   info,
		SalePrice: salePrice,
		Owed:      owed,
	}, nil
}
