package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	creator = protocol.MustAddress("0x0000000000000000000000000000000000000abc")
	alice   = protocol.MustAddress("0x52908400098527886e0f7030069857d2e4169ee7")
	bob     = protocol.MustAddress("0xde709f2102306220921060314715629080e2fb77")
	usdc    = protocol.MustAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
)

func newAsset(id uint64) *entity.Asset {
	now := time.Now()
	return &entity.Asset{
		AssetID:   protocol.NewAssetID(id),
		Creator:   creator,
		Royalty:   protocol.RoyaltyInfo{Recipient: alice, Rate: 250000},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAssets(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.CreateAsset(ctx, newAsset(1)))
	assert.ErrorIs(t, repo.CreateAsset(ctx, newAsset(1)), errs.Conflict)

	asset, err := repo.GetAsset(ctx, protocol.NewAssetID(1))
	require.NoError(t, err)
	assert.Equal(t, alice, asset.Royalty.Recipient)

	// returned assets are copies
	asset.Royalty.Rate = 0
	asset, err = repo.GetAsset(ctx, protocol.NewAssetID(1))
	require.NoError(t, err)
	assert.EqualValues(t, 250000, asset.Royalty.Rate)

	_, err = repo.GetAsset(ctx, protocol.NewAssetID(2))
	assert.ErrorIs(t, err, errs.NotFound)

	assets, err := repo.GetAssetsByIds(ctx, []protocol.AssetID{protocol.NewAssetID(1), protocol.NewAssetID(2)})
	require.NoError(t, err)
	assert.Len(t, assets, 1)
	assert.Contains(t, assets, protocol.NewAssetID(1))

	updated := newAsset(1)
	updated.Royalty = protocol.RoyaltyInfo{Recipient: bob, Rate: 1}
	updated.Version = 2
	require.NoError(t, repo.UpdateAssetRoyalty(ctx, updated))
	asset, err = repo.GetAsset(ctx, protocol.NewAssetID(1))
	require.NoError(t, err)
	assert.Equal(t, updated.Royalty, asset.Royalty)
	assert.EqualValues(t, 2, asset.Version)
	assert.Equal(t, creator, asset.Creator)

	assert.ErrorIs(t, repo.UpdateAssetRoyalty(ctx, newAsset(2)), errs.NotFound)
}

func TestRoyaltyHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.CreateAsset(ctx, newAsset(1)))

	for _, version := range []int64{2, 1} {
		require.NoError(t, repo.CreateRoyaltyVersion(ctx, &entity.RoyaltyVersion{AssetID: protocol.NewAssetID(1), Version: version}))
	}
	assert.ErrorIs(t, repo.CreateRoyaltyVersion(ctx, &entity.RoyaltyVersion{AssetID: protocol.NewAssetID(1), Version: 1}), errs.Conflict)
	assert.ErrorIs(t, repo.CreateRoyaltyVersion(ctx, &entity.RoyaltyVersion{AssetID: protocol.NewAssetID(2), Version: 1}), errs.NotFound)

	history, err := repo.GetRoyaltyHistory(ctx, protocol.NewAssetID(1))
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.EqualValues(t, 1, history[0].Version)
	assert.EqualValues(t, 2, history[1].Version)

	history, err = repo.GetRoyaltyHistory(ctx, protocol.NewAssetID(2))
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	inputs := []protocol.PaymentNotification{
		{RoyaltyRecipient: alice, Buyer: bob, TokenID: protocol.NewAssetID(1), TokenPaid: lo.ToPtr(usdc), Amount: uint128.From64(100)},
		{RoyaltyRecipient: alice, Buyer: creator, TokenID: protocol.NewAssetID(2), Amount: uint128.Max},
		{RoyaltyRecipient: bob, Buyer: bob, TokenID: protocol.NewAssetID(1), Amount: uint128.Zero},
	}
	for i, input := range inputs {
		sequence, err := repo.CreateNotification(ctx, &entity.Notification{PaymentNotification: input})
		require.NoError(t, err)
		assert.EqualValues(t, i+1, sequence)
	}

	testcases := []struct {
		name     string
		filter   entity.NotificationFilter
		expected []int64
	}{
		{name: "all", filter: entity.NotificationFilter{Limit: -1}, expected: []int64{1, 2, 3}},
		{name: "zero limit", filter: entity.NotificationFilter{Limit: 0}, expected: []int64{}},
		{name: "recipient", filter: entity.NotificationFilter{RoyaltyRecipient: &alice, Limit: -1}, expected: []int64{1, 2}},
		{name: "buyer and token", filter: entity.NotificationFilter{Buyer: &bob, TokenID: lo.ToPtr(protocol.NewAssetID(1)), Limit: -1}, expected: []int64{1, 3}},
		{name: "paginated", filter: entity.NotificationFilter{Limit: 1, Offset: 1}, expected: []int64{2}},
		{name: "offset past end", filter: entity.NotificationFilter{Limit: 10, Offset: 5}, expected: []int64{}},
		{name: "from sequence", filter: entity.NotificationFilter{FromSequence: 1, Limit: 10}, expected: []int64{2, 3}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			notifications, err := repo.GetNotifications(ctx, tc.filter)
			require.NoError(t, err)
			actual := lo.Map(notifications, func(n *entity.Notification, _ int) int64 { return n.Sequence })
			assert.Equal(t, tc.expected, actual)
		})
	}

	all, err := repo.GetNotifications(ctx, entity.NotificationFilter{Limit: -1})
	require.NoError(t, err)
	for i, n := range all {
		assert.True(t, inputs[i].Equal(n.PaymentNotification))
	}
}

func TestTx(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	t.Run("commit", func(t *testing.T) {
		tx, err := repo.BeginRoyaltyTx(ctx)
		require.NoError(t, err)
		defer func() { require.NoError(t, tx.Rollback(ctx)) }()

		require.NoError(t, tx.CreateAsset(ctx, newAsset(1)))
		_, err = tx.GetAsset(ctx, protocol.NewAssetID(1))
		require.NoError(t, err, "tx must see its own writes")

		_, err = repo.GetAsset(ctx, protocol.NewAssetID(1))
		assert.ErrorIs(t, err, errs.NotFound, "uncommitted writes must not be visible")

		require.NoError(t, tx.Commit(ctx))
		_, err = repo.GetAsset(ctx, protocol.NewAssetID(1))
		assert.NoError(t, err)
	})
	t.Run("rollback", func(t *testing.T) {
		tx, err := repo.BeginRoyaltyTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.CreateAsset(ctx, newAsset(2)))
		_, err = tx.CreateNotification(ctx, &entity.Notification{})
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))

		_, err = repo.GetAsset(ctx, protocol.NewAssetID(2))
		assert.ErrorIs(t, err, errs.NotFound)
		notifications, err := repo.GetNotifications(ctx, entity.NotificationFilter{Limit: -1})
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})
	t.Run("nested", func(t *testing.T) {
		tx, err := repo.BeginRoyaltyTx(ctx)
		require.NoError(t, err)
		defer func() { require.NoError(t, tx.Rollback(ctx)) }()

		_, err = tx.BeginRoyaltyTx(ctx)
		assert.ErrorIs(t, err, ErrTxAlreadyExists)
	})
	t.Run("concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tx, err := repo.BeginRoyaltyTx(ctx)
				if !assert.NoError(t, err) {
					return
				}
				defer func() { _ = tx.Rollback(ctx) }()
				_, err = tx.CreateNotification(ctx, &entity.Notification{})
				assert.NoError(t, err)
				assert.NoError(t, tx.Commit(ctx))
			}()
		}
		wg.Wait()

		notifications, err := repo.GetNotifications(ctx, entity.NotificationFilter{Limit: -1})
		require.NoError(t, err)
		require.Len(t, notifications, 20)
		for i, n := range notifications {
			assert.EqualValues(t, i+1, n.Sequence)
		}
	})
	t.Run("checkpoint", func(t *testing.T) {
		_, err := repo.GetArchiveCheckpoint(ctx)
		assert.ErrorIs(t, err, errs.NotFound)

		require.NoError(t, repo.SetArchiveCheckpoint(ctx, &entity.ArchiveCheckpoint{LastSequence: 7}))
		checkpoint, err := repo.GetArchiveCheckpoint(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 7, checkpoint.LastSequence)
	})
}
