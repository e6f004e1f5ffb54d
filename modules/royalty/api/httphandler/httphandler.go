package httphandler

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/modules/royalty/usecase"
	"github.com/gaze-network/royalty-registry/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
)

type HttpHandler struct {
	usecase *usecase.Usecase
}

func New(usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
	}
}

// publicKinds are the error kinds safe to expose to the client.
var publicKinds = []errs.ErrorKind{
	errs.NotFound,
	errs.Unauthorized,
	errs.Conflict,
	errs.MalformedRate,
	errs.InvalidArgument,
	errs.Unsupported,
	errs.OverflowUint128,
}

// toPublicError exposes usecase errors of a known kind to the client. Other errors are returned as is.
func toPublicError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range publicKinds {
		if errors.Is(err, kind) {
			return errs.WithPublicMessageCode(err, "", kind.Code())
		}
	}
	return errors.WithStack(err)
}

// caller returns the address of the request caller. A request without caller header is anonymous (zero address).
func caller(ctx *fiber.Ctx) (protocol.Address, error) {
	value := requestcontext.GetCaller(ctx.UserContext())
	if value == "" {
		return protocol.ZeroAddress, nil
	}
	addr, err := protocol.NewAddressFromString(value)
	if err != nil {
		return protocol.Address{}, errs.NewPublicErrorKind(errs.InvalidArgument, fmt.Sprintf("invalid caller address %q", value))
	}
	return addr, nil
}

type royaltyInfoResult struct {
	AssetId        protocol.AssetID `json:"assetId"`
	Receiver       protocol.Address `json:"receiver"`
	RoyaltyRate    protocol.Rate    `json:"royaltyRate"`
	RoyaltyPercent string           `json:"royaltyPercent"`
}

func mapRoyaltyInfo(assetId protocol.AssetID, info protocol.RoyaltyInfo) royaltyInfoResult {
	return royaltyInfoResult{
		AssetId:        assetId,
		Receiver:       info.Recipient,
		RoyaltyRate:    info.Rate,
		RoyaltyPercent: info.Rate.Percent().String(),
	}
}

type assetResult struct {
	AssetId   protocol.AssetID `json:"assetId"`
	Creator   protocol.Address `json:"creator"`
	Receiver  protocol.Address `json:"receiver"`
	Rate      protocol.Rate    `json:"royaltyRate"`
	Version   int64            `json:"version"`
	CreatedAt int64            `json:"createdAt"`
	UpdatedAt int64            `json:"updatedAt"`
}

func mapAsset(asset *entity.Asset) assetResult {
	return assetResult{
		AssetId:   asset.AssetID,
		Creator:   asset.Creator,
		Receiver:  asset.Royalty.Recipient,
		Rate:      asset.Royalty.Rate,
		Version:   asset.Version,
		CreatedAt: asset.CreatedAt.Unix(),
		UpdatedAt: asset.UpdatedAt.Unix(),
	}
}

type notificationResult struct {
	Sequence         int64             `json:"sequence"`
	RoyaltyRecipient protocol.Address  `json:"royaltyRecipient"`
	Buyer            protocol.Address  `json:"buyer"`
	TokenId          protocol.AssetID  `json:"tokenId"`
	TokenPaid        *protocol.Address `json:"tokenPaid"` // null is the native currency
	Amount           string            `json:"amount"`
	Notifier         protocol.Address  `json:"notifier"`
	RoyaltyVersion   int64             `json:"royaltyVersion"`
	ReceivedAt       int64             `json:"receivedAt"`
}

func mapNotification(n *entity.Notification) notificationResult {
	return notificationResult{
		Sequence:         n.Sequence,
		RoyaltyRecipient: n.RoyaltyRecipient,
		Buyer:            n.Buyer,
		TokenId:          n.TokenID,
		TokenPaid:        n.TokenPaid,
		Amount:           n.Amount.String(),
		Notifier:         n.Notifier,
		RoyaltyVersion:   n.RoyaltyVersion,
		ReceivedAt:       n.ReceivedAt.Unix(),
	}
}
