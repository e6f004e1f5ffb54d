package entity

import (
	"time"

	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
)

type Asset struct {
	AssetID protocol.AssetID
	Creator protocol.Address
	Royalty protocol.RoyaltyInfo

	// Version starts at 1 and is bumped on every royalty update.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoyaltyVersion is an entry of the royalty history of an asset.
type RoyaltyVersion struct {
	AssetID   protocol.AssetID
	Version   int64
	Royalty   protocol.RoyaltyInfo
	UpdatedBy protocol.Address
	CreatedAt time.Time
}

// Notification is an appended payment notification.
type Notification struct {
	// Sequence is the append order, starting at 1.
	Sequence int64
	protocol.PaymentNotification

	// Notifier is the caller who reported the payment. Zero if unknown.
	Notifier protocol.Address

	// RoyaltyVersion is the royalty version of the asset when the notification was received. 0 if the asset is unknown.
	RoyaltyVersion int64
	ReceivedAt     time.Time
}

// NotificationFilter filters notifications by the indexed fields. Nil fields are ignored.
type NotificationFilter struct {
	RoyaltyRecipient *protocol.Address
	Buyer            *protocol.Address
	TokenID          *protocol.AssetID

	// FromSequence returns notifications with sequence greater than it.
	FromSequence int64
	Limit        int32
	Offset       int32
}

// Match reports whether the notification satisfies the filter, ignoring pagination.
func (f NotificationFilter) Match(n Notification) bool {
	if n.Sequence <= f.FromSequence {
		return false
	}
	if f.RoyaltyRecipient != nil && *f.RoyaltyRecipient != n.RoyaltyRecipient {
		return false
	}
	if f.Buyer != nil && *f.Buyer != n.Buyer {
		return false
	}
	if f.TokenID != nil && *f.TokenID != n.TokenID {
		return false
	}
	return true
}

// ArchiveCheckpoint is the last notification sequence exported to the archive.
type ArchiveCheckpoint struct {
	LastSequence int64
	UpdatedAt    time.Time
}
