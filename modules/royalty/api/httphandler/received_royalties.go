package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type receivedRoyaltiesRequest struct {
	RoyaltyRecipient string `json:"royaltyRecipient"`
	Buyer            string `json:"buyer"`
	TokenId          string `json:"tokenId"`
	TokenPaid        string `json:"tokenPaid"` // empty or zero address for the native currency
	Amount           string `json:"amount"`
}

func (r receivedRoyaltiesRequest) Validate() (protocol.PaymentNotification, error) {
	var (
		errList      []error
		notification protocol.PaymentNotification
		err          error
	)
	if notification.RoyaltyRecipient, err = protocol.NewAddressFromString(r.RoyaltyRecipient); err != nil {
		errList = append(errList, errors.New("'royaltyRecipient' is not a valid address"))
	}
	if notification.Buyer, err = protocol.NewAddressFromString(r.Buyer); err != nil {
		errList = append(errList, errors.New("'buyer' is not a valid address"))
	}
	if notification.TokenID, err = protocol.NewAssetIDFromString(r.TokenId); err != nil {
		errList = append(errList, errors.New("'tokenId' is not a valid asset id"))
	}
	if r.TokenPaid != "" {
		tokenPaid, err := protocol.NewAddressFromString(r.TokenPaid)
		if err != nil {
			errList = append(errList, errors.New("'tokenPaid' is not a valid address"))
		}
		if !tokenPaid.IsZero() {
			notification.TokenPaid = lo.ToPtr(tokenPaid)
		}
	}
	if notification.Amount, err = uint128.FromString(r.Amount); err != nil {
		errList = append(errList, errors.New("'amount' must be an unsigned 128-bit integer"))
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return protocol.PaymentNotification{}, err
	}
	return notification, nil
}

type receivedRoyaltiesResponse = common.HttpResponse[notificationResult]

func (h *HttpHandler) ReceivedRoyalties(ctx *fiber.Ctx) (err error) {
	var req receivedRoyaltiesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	notification, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}
	notifier, err := caller(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.ReceivedRoyalties(ctx.UserContext(), notifier, notification)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during ReceivedRoyalties"))
	}

	resp := mapNotification(result)
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(receivedRoyaltiesResponse{
		Result: &resp,
	}))
}
