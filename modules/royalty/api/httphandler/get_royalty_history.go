package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gofiber/fiber/v2"
)

type royaltyVersionResult struct {
	Version   int64            `json:"version"`
	Receiver  protocol.Address `json:"receiver"`
	Rate      protocol.Rate    `json:"royaltyRate"`
	UpdatedBy protocol.Address `json:"updatedBy"`
	CreatedAt int64            `json:"createdAt"`
}

type getRoyaltyHistoryResult struct {
	AssetId protocol.AssetID       `json:"assetId"`
	List    []royaltyVersionResult `json:"list"`
}

type getRoyaltyHistoryResponse = common.HttpResponse[getRoyaltyHistoryResult]

func (h *HttpHandler) GetRoyaltyHistory(ctx *fiber.Ctx) (err error) {
	var req getRoyaltyInfoRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	assetId, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	versions, err := h.usecase.RoyaltyHistory(ctx.UserContext(), assetId)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during RoyaltyHistory"))
	}

	list := make([]royaltyVersionResult, 0, len(versions))
	for _, v := range versions {
		list = append(list, royaltyVersionResult{
			Version:   v.Version,
			Receiver:  v.Royalty.Recipient,
			Rate:      v.Royalty.Rate,
			UpdatedBy: v.UpdatedBy,
			CreatedAt: v.CreatedAt.Unix(),
		})
	}
	return errors.WithStack(ctx.JSON(getRoyaltyHistoryResponse{
		Result: &getRoyaltyHistoryResult{
			AssetId: assetId,
			List:    list,
		},
	}))
}
