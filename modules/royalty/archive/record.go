package archive

import (
	"time"

	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/samber/lo"
)

// NotificationRecord is the parquet row of an archived notification.
// Addresses are 0x-prefixed hex, token id and amount are decimal strings.
type NotificationRecord struct {
	Sequence         int64   `parquet:"name=sequence, type=INT64"`
	RoyaltyRecipient string  `parquet:"name=royalty_recipient, type=BYTE_ARRAY, convertedtype=UTF8"`
	Buyer            string  `parquet:"name=buyer, type=BYTE_ARRAY, convertedtype=UTF8"`
	TokenID          string  `parquet:"name=token_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	TokenPaid        *string `parquet:"name=token_paid, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"` // nil is the native currency
	Amount           string  `parquet:"name=amount, type=BYTE_ARRAY, convertedtype=UTF8"`
	Notifier         string  `parquet:"name=notifier, type=BYTE_ARRAY, convertedtype=UTF8"`
	RoyaltyVersion   int64   `parquet:"name=royalty_version, type=INT64"`
	ReceivedAt       int64   `parquet:"name=received_at, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

func mapNotificationToRecord(n *entity.Notification) NotificationRecord {
	var tokenPaid *string
	if n.TokenPaid != nil {
		tokenPaid = lo.ToPtr(n.TokenPaid.String())
	}
	return NotificationRecord{
		Sequence:         n.Sequence,
		RoyaltyRecipient: n.RoyaltyRecipient.String(),
		Buyer:            n.Buyer.String(),
		TokenID:          n.TokenID.String(),
		TokenPaid:        tokenPaid,
		Amount:           n.Amount.String(),
		Notifier:         n.Notifier.String(),
		RoyaltyVersion:   n.RoyaltyVersion,
		ReceivedAt:       n.ReceivedAt.UnixMilli(),
	}
}

// Time returns the receive time of the record.
func (r NotificationRecord) Time() time.Time {
	return time.UnixMilli(r.ReceivedAt).UTC()
}
