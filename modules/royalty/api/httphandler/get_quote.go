package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type getQuoteRequest struct {
	AssetId   string `params:"assetId"`
	SalePrice string `query:"salePrice"`
}

func (r getQuoteRequest) Validate() (protocol.AssetID, protocol.Amount, error) {
	var errList []error
	assetId, err := protocol.NewAssetIDFromString(r.AssetId)
	if err != nil {
		errList = append(errList, errors.New("'assetId' is not a valid asset id"))
	}
	salePrice, err := uint128.FromString(r.SalePrice)
	if err != nil {
		errList = append(errList, errors.New("'salePrice' must be an unsigned 128-bit integer"))
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return protocol.AssetID{}, protocol.Amount{}, err
	}
	return assetId, salePrice, nil
}

type getQuoteResult struct {
	royaltyInfoResult
	SalePrice     string `json:"salePrice"`
	RoyaltyAmount string `json:"royaltyAmount"`
}

type getQuoteResponse = common.HttpResponse[getQuoteResult]

func (h *HttpHandler) GetQuote(ctx *fiber.Ctx) (err error) {
	var req getQuoteRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	assetId, salePrice, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	quote, err := h.usecase.Quote(ctx.UserContext(), assetId, salePrice)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during Quote"))
	}

	return errors.WithStack(ctx.JSON(getQuoteResponse{
		Result: &getQuoteResult{
			royaltyInfoResult: mapRoyaltyInfo(quote.AssetID, quote.Royalty),
			SalePrice:         quote.SalePrice.String(),
			RoyaltyAmount:     quote.Owed.String(),
		},
	}))
}
