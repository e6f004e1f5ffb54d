package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/modules/royalty/usecase"
	"github.com/gofiber/fiber/v2"
)

type getRoyaltyInfoBatchRequest struct {
	AssetIds []string `json:"assetIds"`
}

func (r *getRoyaltyInfoBatchRequest) Validate() ([]protocol.AssetID, error) {
	var errList []error
	if len(r.AssetIds) == 0 {
		errList = append(errList, errors.New("assetIds cannot be empty"))
	}
	if len(r.AssetIds) > usecase.MaxBatchSize {
		errList = append(errList, errors.Errorf("cannot query more than %d asset ids", usecase.MaxBatchSize))
	}
	assetIds := make([]protocol.AssetID, 0, len(r.AssetIds))
	for i, id := range r.AssetIds {
		assetId, err := protocol.NewAssetIDFromString(id)
		if err != nil {
			errList = append(errList, errors.Errorf("assetIds[%d]: '%s' is not a valid asset id", i, id))
			continue
		}
		assetIds = append(assetIds, assetId)
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return nil, err
	}
	return assetIds, nil
}

type getRoyaltyInfoBatchResult struct {
	List []royaltyInfoResult `json:"list"`
}

type getRoyaltyInfoBatchResponse = common.HttpResponse[getRoyaltyInfoBatchResult]

func (h *HttpHandler) GetRoyaltyInfoBatch(ctx *fiber.Ctx) (err error) {
	var req getRoyaltyInfoBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	assetIds, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	infos, err := h.usecase.RoyaltyInfoBatch(ctx.UserContext(), assetIds)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during RoyaltyInfoBatch"))
	}

	list := make([]royaltyInfoResult, 0, len(infos))
	for i, info := range infos {
		list = append(list, mapRoyaltyInfo(assetIds[i], info))
	}
	return errors.WithStack(ctx.JSON(getRoyaltyInfoBatchResponse{
		Result: &getRoyaltyInfoBatchResult{
			List: list,
		},
	}))
}
