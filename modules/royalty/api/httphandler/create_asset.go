package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gofiber/fiber/v2"
)

type royaltyRequest struct {
	Receiver       string  `json:"receiver"`
	RoyaltyRate    *uint64 `json:"royaltyRate"`
	RoyaltyPercent string  `json:"royaltyPercent"` // e.g. "2.5", used when royaltyRate is omitted
}

func (r royaltyRequest) royalty() (protocol.RoyaltyInfo, error) {
	var errList []error
	var info protocol.RoyaltyInfo
	if r.Receiver != "" {
		receiver, err := protocol.NewAddressFromString(r.Receiver)
		if err != nil {
			errList = append(errList, errors.New("'receiver' is not a valid address"))
		}
		info.Recipient = receiver
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return protocol.RoyaltyInfo{}, err
	}

	var err error
	switch {
	case r.RoyaltyRate != nil:
		info.Rate, err = protocol.NewRate(*r.RoyaltyRate)
	case r.RoyaltyPercent != "":
		info.Rate, err = protocol.NewRateFromPercent(r.RoyaltyPercent)
	}
	if err != nil {
		return protocol.RoyaltyInfo{}, toPublicError(err)
	}
	return info, nil
}

type createAssetRequest struct {
	AssetId string `json:"assetId"`
	royaltyRequest
}

type createAssetResponse = common.HttpResponse[assetResult]

func (h *HttpHandler) CreateAsset(ctx *fiber.Ctx) (err error) {
	var req createAssetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	assetId, err := protocol.NewAssetIDFromString(req.AssetId)
	if err != nil {
		return errs.WithPublicMessage(err, "validation error: 'assetId' is not a valid asset id")
	}
	royalty, err := req.royalty()
	if err != nil {
		return errors.WithStack(err)
	}
	creator, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	asset, err := h.usecase.CreateAsset(ctx.UserContext(), creator, assetId, royalty)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during CreateAsset"))
	}

	result := mapAsset(asset)
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(createAssetResponse{
		Result: &result,
	}))
}
