package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
)

const (
	DefaultNotificationsLimit = 100
	MaxNotificationsLimit     = 1000
)

// ReceivedRoyalties appends the payment notification exactly as given and publishes it to subscribers.
// It never moves funds or changes any royalty. A notification is a claim by the caller, not a proof of payment.
// The notification of an unknown asset is accepted with royalty version 0.
func (u *Usecase) ReceivedRoyalties(ctx context.Context, caller protocol.Address, notification protocol.PaymentNotification) (_ *entity.Notification, err error) {
	defer func() {
		if err != nil {
			notifications.WithLabelValues("rejected").Inc()
		}
	}()

	if u.allowlist {
		if _, ok := u.allowedNotifiers[caller]; !ok {
			return nil, errors.Wrapf(errs.Unauthorized, "caller %s is not allowed to report payments", caller)
		}
	}

	tx, err := u.dg.BeginRoyaltyTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	var royaltyVersion int64
	asset, err := tx.GetAsset(ctx, notification.TokenID)
	switch {
	case err == nil:
		royaltyVersion = asset.Version
	case errors.Is(err, errs.NotFound):
		logger.DebugContext(ctx, "Received royalties of unknown asset", slogx.Stringer("asset_id", notification.TokenID))
	default:
		return nil, errors.Wrap(err, "failed to get asset")
	}

	result := &entity.Notification{
		PaymentNotification: notification,
		Notifier:            caller,
		RoyaltyVersion:      royaltyVersion,
		ReceivedAt:          u.now(),
	}
	sequence, err := tx.CreateNotification(ctx, result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create notification")
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}
	result.Sequence = sequence

	notifications.WithLabelValues("accepted").Inc()
	u.broker.Publish(*result)
	logger.InfoContext(ctx, "Received royalties",
		slogx.Int64("sequence", sequence),
		slogx.Stringer("royalty_recipient", notification.RoyaltyRecipient),
		slogx.Stringer("buyer", notification.Buyer),
		slogx.Stringer("token_id", notification.TokenID),
		slogx.Stringer("amount", notification.Amount),
	)
	return result, nil
}

// Notifications returns the notifications matching the filter ordered by sequence.
func (u *Usecase) Notifications(ctx context.Context, filter entity.NotificationFilter) ([]*entity.Notification, error) {
	switch {
	case filter.Limit == 0:
		filter.Limit = DefaultNotificationsLimit
	case filter.Limit < 0 || filter.Limit > MaxNotificationsLimit:
		return nil, errors.Wrapf(errs.InvalidArgument, "limit must be between 1 and %d", MaxNotificationsLimit)
	}
	if filter.Offset < 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "offset cannot be negative")
	}
	if filter.FromSequence < 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "from sequence cannot be negative")
	}
	result, err := u.dg.GetNotifications(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get notifications")
	}
	return result, nil
}
