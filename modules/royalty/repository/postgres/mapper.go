package postgres

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/modules/royalty/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
)

func uint128FromNumeric(src pgtype.Numeric) (*uint128.Uint128, error) {
	if !src.Valid {
		return nil, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &result, nil
}

func numericFromUint128(src *uint128.Uint128) (pgtype.Numeric, error) {
	if src == nil {
		return pgtype.Numeric{}, nil
	}
	return numericFromString(src.String())
}

func assetIdFromNumeric(src pgtype.Numeric) (protocol.AssetID, error) {
	if !src.Valid {
		return protocol.AssetID{}, errors.New("asset id cannot be null")
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return protocol.AssetID{}, errors.WithStack(err)
	}
	assetId, err := protocol.NewAssetIDFromString(string(bytes))
	if err != nil {
		return protocol.AssetID{}, errors.WithStack(err)
	}
	return assetId, nil
}

func numericFromAssetId(src protocol.AssetID) pgtype.Numeric {
	return pgtype.Numeric{Int: src.Uint256().ToBig(), Exp: 0, Valid: true}
}

func numericFromString(src string) (pgtype.Numeric, error) {
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src)); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func textFromAddress(src *protocol.Address) pgtype.Text {
	if src == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: src.String(), Valid: true}
}

func addressFromText(src pgtype.Text) (*protocol.Address, error) {
	if !src.Valid {
		return nil, nil
	}
	addr, err := protocol.NewAddressFromString(src.String)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &addr, nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timeFromTimestamptz(src pgtype.Timestamptz) time.Time {
	if !src.Valid {
		return time.Time{}
	}
	return src.Time.UTC()
}

func mapAssetModelToType(src gen.RoyaltyAsset) (entity.Asset, error) {
	assetId, err := assetIdFromNumeric(src.AssetID)
	if err != nil {
		return entity.Asset{}, errors.Wrap(err, "failed to parse asset id")
	}
	creator, err := protocol.NewAddressFromString(src.Creator)
	if err != nil {
		return entity.Asset{}, errors.Wrap(err, "failed to parse creator")
	}
	recipient, err := protocol.NewAddressFromString(src.Recipient)
	if err != nil {
		return entity.Asset{}, errors.Wrap(err, "failed to parse recipient")
	}
	return entity.Asset{
		AssetID: assetId,
		Creator: creator,
		Royalty: protocol.RoyaltyInfo{
			Recipient: recipient,
			Rate:      protocol.Rate(src.Rate),
		},
		Version:   src.Version,
		CreatedAt: timeFromTimestamptz(src.CreatedAt),
		UpdatedAt: timeFromTimestamptz(src.UpdatedAt),
	}, nil
}

func mapAssetTypeToParams(src entity.Asset) gen.CreateAssetParams {
	return gen.CreateAssetParams{
		AssetID:   numericFromAssetId(src.AssetID),
		Creator:   src.Creator.String(),
		Recipient: src.Royalty.Recipient.String(),
		Rate:      int32(src.Royalty.Rate),
		Version:   src.Version,
		CreatedAt: timestamptz(src.CreatedAt),
		UpdatedAt: timestamptz(src.UpdatedAt),
	}
}

func mapRoyaltyVersionModelToType(src gen.RoyaltyVersion) (entity.RoyaltyVersion, error) {
	assetId, err := assetIdFromNumeric(src.AssetID)
	if err != nil {
		return entity.RoyaltyVersion{}, errors.Wrap(err, "failed to parse asset id")
	}
	recipient, err := protocol.NewAddressFromString(src.Recipient)
	if err != nil {
		return entity.RoyaltyVersion{}, errors.Wrap(err, "failed to parse recipient")
	}
	updatedBy, err := protocol.NewAddressFromString(src.UpdatedBy)
	if err != nil {
		return entity.RoyaltyVersion{}, errors.Wrap(err, "failed to parse updated by")
	}
	return entity.RoyaltyVersion{
		AssetID: assetId,
		Version: src.Version,
		Royalty: protocol.RoyaltyInfo{
			Recipient: recipient,
			Rate:      protocol.Rate(src.Rate),
		},
		UpdatedBy: updatedBy,
		CreatedAt: timeFromTimestamptz(src.CreatedAt),
	}, nil
}

func mapRoyaltyVersionTypeToParams(src entity.RoyaltyVersion) gen.CreateRoyaltyVersionParams {
	return gen.CreateRoyaltyVersionParams{
		AssetID:   numericFromAssetId(src.AssetID),
		Version:   src.Version,
		Recipient: src.Royalty.Recipient.String(),
		Rate:      int32(src.Royalty.Rate),
		UpdatedBy: src.UpdatedBy.String(),
		CreatedAt: timestamptz(src.CreatedAt),
	}
}

func mapNotificationModelToType(src gen.RoyaltyNotification) (entity.Notification, error) {
	recipient, err := protocol.NewAddressFromString(src.RoyaltyRecipient)
	if err != nil {
		return entity.Notification{}, errors.Wrap(err, "failed to parse royalty recipient")
	}
	buyer, err := protocol.NewAddressFromString(src.Buyer)
	if err != nil {
		return entity.Notification{}, errors.Wrap(err, "failed to parse buyer")
	}
	tokenId, err := assetIdFromNumeric(src.TokenID)
	if err != nil {
		return entity.Notification{}, errors.Wrap(err, "failed to parse token id")
	}
	tokenPaid, err := addressFromText(src.TokenPaid)
	if err != nil {
		return entity.Notification{}, errors.Wrap(err, "failed to parse token paid")
	}
	amount, err := uint128FromNumeric(src.Amount)
	if err != nil {
		return entity.Notification{}, errors.Wrap(err, "failed to parse amount")
	}
	if amount == nil {
		return entity.Notification{}, errors.New("amount cannot be null")
	}
	notifier, err := protocol.NewAddressFromString(src.Notifier)
	if err != nil {
		return entity.Notification{}, errors.Wrap(err, "failed to parse notifier")
	}
	return entity.Notification{
		Sequence: src.Sequence,
		PaymentNotification: protocol.PaymentNotification{
			RoyaltyRecipient: recipient,
			Buyer:            buyer,
			TokenID:          tokenId,
			TokenPaid:        tokenPaid,
			Amount:           *amount,
		},
		Notifier:       notifier,
		RoyaltyVersion: src.RoyaltyVersion,
		ReceivedAt:     timeFromTimestamptz(src.ReceivedAt),
	}, nil
}

func mapNotificationTypeToParams(src entity.Notification) (gen.CreateNotificationParams, error) {
	amount, err := numericFromUint128(&src.Amount)
	if err != nil {
		return gen.CreateNotificationParams{}, errors.Wrap(err, "failed to parse amount")
	}
	return gen.CreateNotificationParams{
		RoyaltyRecipient: src.RoyaltyRecipient.String(),
		Buyer:            src.Buyer.String(),
		TokenID:          numericFromAssetId(src.TokenID),
		TokenPaid:        textFromAddress(src.TokenPaid),
		Amount:           amount,
		Notifier:         src.Notifier.String(),
		RoyaltyVersion:   src.RoyaltyVersion,
		ReceivedAt:       timestamptz(src.ReceivedAt),
	}, nil
}

func mapNotificationFilterToParams(src entity.NotificationFilter) gen.GetNotificationsParams {
	params := gen.GetNotificationsParams{
		FromSequence:     src.FromSequence,
		RoyaltyRecipient: textFromAddress(src.RoyaltyRecipient),
		Buyer:            textFromAddress(src.Buyer),
		Limit:            src.Limit,
		Offset:           src.Offset,
	}
	if src.TokenID != nil {
		params.TokenID = numericFromAssetId(*src.TokenID)
	}
	return params
}
