package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gofiber/fiber/v2"
)

type getRoyaltyInfoRequest struct {
	AssetId string `params:"assetId"`
}

func (r getRoyaltyInfoRequest) Validate() (protocol.AssetID, error) {
	assetId, err := protocol.NewAssetIDFromString(r.AssetId)
	if err != nil {
		return protocol.AssetID{}, errs.WithPublicMessage(err, "validation error: 'assetId' is not a valid asset id")
	}
	return assetId, nil
}

type getRoyaltyInfoResponse = common.HttpResponse[royaltyInfoResult]

func (h *HttpHandler) GetRoyaltyInfo(ctx *fiber.Ctx) (err error) {
	var req getRoyaltyInfoRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	assetId, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	info, err := h.usecase.RoyaltyInfo(ctx.UserContext(), assetId)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during RoyaltyInfo"))
	}

	result := mapRoyaltyInfo(assetId, info)
	return errors.WithStack(ctx.JSON(getRoyaltyInfoResponse{
		Result: &result,
	}))
}
