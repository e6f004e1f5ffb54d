package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/modules/royalty/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getEventsRequest struct {
	RoyaltyRecipient string `query:"royaltyRecipient"`
	Buyer            string `query:"buyer"`
	TokenId          string `query:"tokenId"`
	FromSequence     int64  `query:"fromSequence"`
	Limit            int32  `query:"limit"`
	Offset           int32  `query:"offset"`
}

func (r getEventsRequest) Validate() (entity.NotificationFilter, error) {
	var errList []error
	filter := entity.NotificationFilter{
		FromSequence: r.FromSequence,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}
	if r.RoyaltyRecipient != "" {
		addr, err := protocol.NewAddressFromString(r.RoyaltyRecipient)
		if err != nil {
			errList = append(errList, errors.New("'royaltyRecipient' is not a valid address"))
		}
		filter.RoyaltyRecipient = lo.ToPtr(addr)
	}
	if r.Buyer != "" {
		addr, err := protocol.NewAddressFromString(r.Buyer)
		if err != nil {
			errList = append(errList, errors.New("'buyer' is not a valid address"))
		}
		filter.Buyer = lo.ToPtr(addr)
	}
	if r.TokenId != "" {
		tokenId, err := protocol.NewAssetIDFromString(r.TokenId)
		if err != nil {
			errList = append(errList, errors.New("'tokenId' is not a valid asset id"))
		}
		filter.TokenID = lo.ToPtr(tokenId)
	}
	if r.Limit < 0 || r.Limit > usecase.MaxNotificationsLimit {
		errList = append(errList, errors.Errorf("'limit' must be between 1 and %d", usecase.MaxNotificationsLimit))
	}
	if r.Offset < 0 {
		errList = append(errList, errors.New("'offset' cannot be negative"))
	}
	if r.FromSequence < 0 {
		errList = append(errList, errors.New("'fromSequence' cannot be negative"))
	}
	if err := errs.WithPublicMessage(errors.Join(errList...), "validation error"); err != nil {
		return entity.NotificationFilter{}, err
	}
	return filter, nil
}

type getEventsResult struct {
	List []notificationResult `json:"list"`
}

type getEventsResponse = common.HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	filter, err := req.Validate()
	if err != nil {
		return errors.WithStack(err)
	}

	notifications, err := h.usecase.Notifications(ctx.UserContext(), filter)
	if err != nil {
		return toPublicError(errors.Wrap(err, "error during Notifications"))
	}

	return errors.WithStack(ctx.JSON(getEventsResponse{
		Result: &getEventsResult{
			List: lo.Map(notifications, func(n *entity.Notification, _ int) notificationResult {
				return mapNotification(n)
			}),
		},
	}))
}
