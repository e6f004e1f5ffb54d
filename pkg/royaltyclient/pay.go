package royaltyclient

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
)

// ErrNotifyFailed is returned by Pay when the royalty was transferred but the registry wasn't notified.
// The transfer must not be repeated, only the notification.
var ErrNotifyFailed = errors.New("royalty transferred but notification failed")

// Transferer moves funds from the payer to the royalty recipient. A nil token is the native currency.
type Transferer interface {
	Transfer(ctx context.Context, to protocol.Address, token *protocol.Address, amount protocol.Amount) (*TransferReceipt, error)
}

type TransferReceipt struct {
	// Reference identifies the transfer in the payment system, e.g. a transaction hash.
	Reference string
}

type Payment struct {
	AssetID   protocol.AssetID
	Buyer     protocol.Address
	TokenPaid *protocol.Address // nil is the native currency
	SalePrice protocol.Amount
}

type PayResult struct {
	Royalty  protocol.RoyaltyInfo
	Owed     protocol.Amount
	Transfer *TransferReceipt // nil when nothing is owed
	Receipt  *Receipt         // nil when nothing is owed or the notification failed
}

// Pay pays the royalty of a sale: it checks the registry supports royalties, computes the owed
// amount from royaltyInfo, transfers it with transferer and reports the payment to the registry.
// Nothing is transferred nor reported when the owed amount is zero.
func (c *Client) Pay(ctx context.Context, transferer Transferer, payment Payment) (*PayResult, error) {
	ctx = logger.WithContext(ctx, slog.String("package", "royaltyclient"), slogx.Stringer("asset_id", payment.AssetID))

	supported, err := c.SupportsInterface(ctx, protocol.InterfaceIDRoyalty)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check royalty support")
	}
	if !supported {
		return nil, errors.Wrap(errs.Unsupported, "registry doesn't support royalties")
	}

	royalty, err := c.RoyaltyInfo(ctx, payment.AssetID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get royalty info")
	}
	owed, err := royalty.Owed(payment.SalePrice)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute owed royalty")
	}
	result := &PayResult{
		Royalty: royalty,
		Owed:    owed,
	}
	if owed.IsZero() || royalty.Recipient.IsZero() {
		logger.DebugContext(ctx, "No royalty owed")
		return result, nil
	}

	transfer, err := transferer.Transfer(ctx, royalty.Recipient, payment.TokenPaid, owed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to transfer royalty")
	}
	if transfer == nil {
		transfer = &TransferReceipt{}
	}
	result.Transfer = transfer

	receipt, err := c.ReceivedRoyalties(ctx, protocol.PaymentNotification{
		RoyaltyRecipient: royalty.Recipient,
		Buyer:            payment.Buyer,
		TokenID:          payment.AssetID,
		TokenPaid:        payment.TokenPaid,
		Amount:           owed,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Royalty transferred but notification failed", err, slogx.String("transfer", transfer.Reference))
		return result, errors.Join(ErrNotifyFailed, errors.Wrap(err, "failed to notify registry"))
	}
	result.Receipt = receipt
	return result, nil
}
