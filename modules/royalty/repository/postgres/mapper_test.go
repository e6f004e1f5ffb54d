package postgres

import (
	"math/big"
	"testing"
	"time"

	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/modules/royalty/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint128Numeric(t *testing.T) {
	for _, value := range []uint128.Uint128{uint128.Zero, uint128.From64(1), uint128.From64(1_000_000), uint128.Max} {
		t.Run(value.String(), func(t *testing.T) {
			numeric, err := numericFromUint128(&value)
			require.NoError(t, err)
			actual, err := uint128FromNumeric(numeric)
			require.NoError(t, err)
			require.NotNil(t, actual)
			assert.Equal(t, value, *actual)
		})
	}
	t.Run("null", func(t *testing.T) {
		numeric, err := numericFromUint128(nil)
		require.NoError(t, err)
		assert.False(t, numeric.Valid)
		actual, err := uint128FromNumeric(numeric)
		require.NoError(t, err)
		assert.Nil(t, actual)
	})
}

func TestAssetIdFromNumeric(t *testing.T) {
	t.Run("exponent", func(t *testing.T) {
		// postgres may return trailing zeros as exponent
		assetId, err := assetIdFromNumeric(pgtype.Numeric{Int: big.NewInt(42), Exp: 3, Valid: true})
		require.NoError(t, err)
		assert.Equal(t, "42000", assetId.String())
	})
	t.Run("max", func(t *testing.T) {
		expected := protocol.MustAssetID("115792089237316195423570985008687907853269984665640564039457584007913129639935")
		assetId, err := assetIdFromNumeric(numericFromAssetId(expected))
		require.NoError(t, err)
		assert.Equal(t, expected, assetId)
	})
	t.Run("null", func(t *testing.T) {
		_, err := assetIdFromNumeric(pgtype.Numeric{})
		assert.Error(t, err)
	})
}

func TestMapNotification(t *testing.T) {
	token := protocol.MustAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	receivedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	testcases := []struct {
		name      string
		tokenPaid *protocol.Address
	}{
		{name: "erc20", tokenPaid: &token},
		{name: "native", tokenPaid: nil},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			expected := entity.Notification{
				Sequence: 0,
				PaymentNotification: protocol.PaymentNotification{
					RoyaltyRecipient: protocol.MustAddress("0x52908400098527886e0f7030069857d2e4169ee7"),
					Buyer:            protocol.MustAddress("0xde709f2102306220921060314715629080e2fb77"),
					TokenID:          protocol.NewAssetID(7),
					TokenPaid:        tc.tokenPaid,
					Amount:           uint128.From64(5_000_000),
				},
				Notifier:       protocol.MustAddress("0x0000000000000000000000000000000000000abc"),
				RoyaltyVersion: 2,
				ReceivedAt:     receivedAt,
			}
			params, err := mapNotificationTypeToParams(expected)
			require.NoError(t, err)
			assert.Equal(t, tc.tokenPaid != nil, params.TokenPaid.Valid)

			model := mapParamsToNotificationModel(params)
			actual, err := mapNotificationModelToType(model)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
}

func TestMapNotificationFilterToParams(t *testing.T) {
	params := mapNotificationFilterToParams(entity.NotificationFilter{Limit: -1})
	assert.False(t, params.RoyaltyRecipient.Valid)
	assert.False(t, params.Buyer.Valid)
	assert.False(t, params.TokenID.Valid)
	assert.EqualValues(t, -1, params.Limit)

	params = mapNotificationFilterToParams(entity.NotificationFilter{
		Buyer:        lo.ToPtr(protocol.MustAddress("0xde709f2102306220921060314715629080e2fb77")),
		TokenID:      lo.ToPtr(protocol.NewAssetID(7)),
		FromSequence: 10,
		Limit:        5,
		Offset:       2,
	})
	assert.Equal(t, "0xde709f2102306220921060314715629080e2fb77", params.Buyer.String)
	assert.True(t, params.TokenID.Valid)
	assert.EqualValues(t, 10, params.FromSequence)
	assert.EqualValues(t, 2, params.Offset)
}

func mapParamsToNotificationModel(params gen.CreateNotificationParams) gen.RoyaltyNotification {
	return gen.RoyaltyNotification{
		RoyaltyRecipient: params.RoyaltyRecipient,
		Buyer:            params.Buyer,
		TokenID:          params.TokenID,
		TokenPaid:        params.TokenPaid,
		Amount:           params.Amount,
		Notifier:         params.Notifier,
		RoyaltyVersion:   params.RoyaltyVersion,
		ReceivedAt:       params.ReceivedAt,
	}
}
