package entity

import (
	"testing"

	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestNotificationFilterMatch(t *testing.T) {
	alice := protocol.MustAddress("0x52908400098527886e0f7030069857d2e4169ee7")
	bob := protocol.MustAddress("0xde709f2102306220921060314715629080e2fb77")
	n := Notification{
		Sequence: 5,
		PaymentNotification: protocol.PaymentNotification{
			RoyaltyRecipient: alice,
			Buyer:            bob,
			TokenID:          protocol.NewAssetID(7),
		},
	}

	testcases := []struct {
		name     string
		filter   NotificationFilter
		expected bool
	}{
		{name: "no filter", filter: NotificationFilter{}, expected: true},
		{name: "recipient", filter: NotificationFilter{RoyaltyRecipient: &alice}, expected: true},
		{name: "other recipient", filter: NotificationFilter{RoyaltyRecipient: &bob}, expected: false},
		{name: "buyer", filter: NotificationFilter{Buyer: &bob}, expected: true},
		{name: "other buyer", filter: NotificationFilter{Buyer: &alice}, expected: false},
		{name: "token id", filter: NotificationFilter{TokenID: lo.ToPtr(protocol.NewAssetID(7))}, expected: true},
		{name: "other token id", filter: NotificationFilter{TokenID: lo.ToPtr(protocol.NewAssetID(8))}, expected: false},
		{name: "all fields", filter: NotificationFilter{RoyaltyRecipient: &alice, Buyer: &bob, TokenID: lo.ToPtr(protocol.NewAssetID(7))}, expected: true},
		{name: "before sequence", filter: NotificationFilter{FromSequence: 4}, expected: true},
		{name: "after sequence", filter: NotificationFilter{FromSequence: 5}, expected: false},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.filter.Match(n))
		})
	}
}
