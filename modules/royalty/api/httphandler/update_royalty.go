package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gofiber/fiber/v2"
)

type updateRoyaltyRequest struct {
	AssetId string `params:"assetId"`
	royaltyRequest
}

type updateRoyaltyResponse = common.HttpResponse[assetResult]

func (h *HttpHandler) UpdateRoyalty(ctx *fiber.Ctx) (err error) {
	var req updateRoyaltyRequest
	if err := ctx.BodyParser(&req.royaltyRequest); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	assetId, err := getRoyaltyInfoRequest{AssetId: req.AssetId}.Validate()
	if err != nil {
		return errors.WithStack(err)
	}
	royalty, err := req.royalty()
	if err != nil {
		return errors.WithStack(err)
	}
	updater, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	asset, err := h.usecase.UpdateRoyalty(ctx.UserContext(), updater, assetId, royalty)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during UpdateRoyalty"))
	}

	result := mapAsset(asset)
	return errors.WithStack(ctx.JSON(updateRoyaltyResponse{
		Result: &result,
	}))
}

