package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/internal/postgres"
	"github.com/gaze-network/royalty-registry/modules/royalty/internal/entity"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a postgres container with the royalty schema applied.
func setupTestDB(t *testing.T) postgres.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("royalty"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	require.NoError(t, postgres.MigrateUp(postgres.MigrateOptions{
		DatabaseURL:     dsn,
		SourcePath:      filepath.Join(findProjectRoot(t), "modules", "royalty", "database", "postgresql", "migrations"),
		MigrationsTable: "royalty_schema_migrations",
	}))

	pool, err := postgres.NewPool(ctx, postgres.Config{URL: dsn})
	require.NoError(t, err, "failed to create pool")
	t.Cleanup(pool.Close)
	return pool
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func TestRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	creator := protocol.MustAddress("0x0000000000000000000000000000000000000abc")
	alice := protocol.MustAddress("0x52908400098527886e0f7030069857d2e4169ee7")
	bob := protocol.MustAddress("0xde709f2102306220921060314715629080e2fb77")
	usdc := protocol.MustAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	now := time.Now().UTC().Truncate(time.Microsecond)
	largeId := protocol.MustAssetID("115792089237316195423570985008687907853269984665640564039457584007913129639935")

	asset := &entity.Asset{
		AssetID:   largeId,
		Creator:   creator,
		Royalty:   protocol.RoyaltyInfo{Recipient: alice, Rate: 250000},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("create and get asset", func(t *testing.T) {
		tx, err := repo.BeginRoyaltyTx(ctx)
		require.NoError(t, err)
		defer func() { require.NoError(t, tx.Rollback(ctx)) }()

		require.NoError(t, tx.CreateAsset(ctx, asset))
		require.NoError(t, tx.CreateRoyaltyVersion(ctx, &entity.RoyaltyVersion{
			AssetID:   asset.AssetID,
			Version:   1,
			Royalty:   asset.Royalty,
			UpdatedBy: creator,
			CreatedAt: now,
		}))
		require.NoError(t, tx.Commit(ctx))

		actual, err := repo.GetAsset(ctx, largeId)
		require.NoError(t, err)
		assert.Equal(t, asset, actual)
	})
	t.Run("duplicate asset", func(t *testing.T) {
		err := repo.CreateAsset(ctx, asset)
		assert.ErrorIs(t, err, errs.Conflict)
	})
	t.Run("unknown asset", func(t *testing.T) {
		_, err := repo.GetAsset(ctx, protocol.NewAssetID(404))
		assert.ErrorIs(t, err, errs.NotFound)

		err = repo.UpdateAssetRoyalty(ctx, &entity.Asset{AssetID: protocol.NewAssetID(404), UpdatedAt: now})
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("rolled back asset is not persisted", func(t *testing.T) {
		tx, err := repo.BeginRoyaltyTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.CreateAsset(ctx, &entity.Asset{AssetID: protocol.NewAssetID(1), Creator: creator, Version: 1, CreatedAt: now, UpdatedAt: now}))
		require.NoError(t, tx.Rollback(ctx))

		_, err = repo.GetAsset(ctx, protocol.NewAssetID(1))
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("update royalty", func(t *testing.T) {
		updated := *asset
		updated.Royalty = protocol.RoyaltyInfo{Recipient: bob, Rate: 0}
		updated.Version = 2
		require.NoError(t, repo.UpdateAssetRoyalty(ctx, &updated))
		require.NoError(t, repo.CreateRoyaltyVersion(ctx, &entity.RoyaltyVersion{
			AssetID:   updated.AssetID,
			Version:   2,
			Royalty:   updated.Royalty,
			UpdatedBy: creator,
			CreatedAt: now,
		}))

		assets, err := repo.GetAssetsByIds(ctx, []protocol.AssetID{largeId, protocol.NewAssetID(404)})
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, updated.Royalty, assets[largeId].Royalty)
		assert.EqualValues(t, 2, assets[largeId].Version)

		history, err := repo.GetRoyaltyHistory(ctx, largeId)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.EqualValues(t, 1, history[0].Version)
		assert.Equal(t, alice, history[0].Royalty.Recipient)
		assert.EqualValues(t, 2, history[1].Version)
		assert.Equal(t, bob, history[1].Royalty.Recipient)
	})
	t.Run("notifications", func(t *testing.T) {
		inputs := []protocol.PaymentNotification{
			{RoyaltyRecipient: alice, Buyer: bob, TokenID: protocol.NewAssetID(1), TokenPaid: &usdc, Amount: uint128.From64(100)},
			{RoyaltyRecipient: alice, Buyer: creator, TokenID: protocol.NewAssetID(2), Amount: uint128.Max},
			{RoyaltyRecipient: bob, Buyer: bob, TokenID: protocol.NewAssetID(1), Amount: uint128.Zero},
		}
		for i, input := range inputs {
			sequence, err := repo.CreateNotification(ctx, &entity.Notification{
				PaymentNotification: input,
				Notifier:            creator,
				ReceivedAt:          now,
			})
			require.NoError(t, err)
			assert.EqualValues(t, i+1, sequence)
		}

		all, err := repo.GetNotifications(ctx, entity.NotificationFilter{Limit: -1})
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, n := range all {
			assert.EqualValues(t, i+1, n.Sequence)
			assert.True(t, inputs[i].Equal(n.PaymentNotification))
		}

		byRecipient, err := repo.GetNotifications(ctx, entity.NotificationFilter{RoyaltyRecipient: &alice, Limit: -1})
		require.NoError(t, err)
		assert.Len(t, byRecipient, 2)

		byToken, err := repo.GetNotifications(ctx, entity.NotificationFilter{TokenID: lo.ToPtr(protocol.NewAssetID(1)), Buyer: &bob, Limit: -1})
		require.NoError(t, err)
		require.Len(t, byToken, 2)
		assert.EqualValues(t, []int64{1, 3}, []int64{byToken[0].Sequence, byToken[1].Sequence})

		paged, err := repo.GetNotifications(ctx, entity.NotificationFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.EqualValues(t, 2, paged[0].Sequence)

		after, err := repo.GetNotifications(ctx, entity.NotificationFilter{FromSequence: 2, Limit: -1})
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.EqualValues(t, 3, after[0].Sequence)
	})
	t.Run("archive checkpoint", func(t *testing.T) {
		_, err := repo.GetArchiveCheckpoint(ctx)
		assert.ErrorIs(t, err, errs.NotFound)

		for _, sequence := range []int64{2, 3} {
			require.NoError(t, repo.SetArchiveCheckpoint(ctx, &entity.ArchiveCheckpoint{LastSequence: sequence, UpdatedAt: now}))
		}
		checkpoint, err := repo.GetArchiveCheckpoint(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, checkpoint.LastSequence)
	})
	t.Run("nested tx", func(t *testing.T) {
		tx, err := repo.BeginRoyaltyTx(ctx)
		require.NoError(t, err)
		defer func() { require.NoError(t, tx.Rollback(ctx)) }()

		_, err = tx.BeginRoyaltyTx(ctx)
		assert.ErrorIs(t, err, ErrTxAlreadyExists)
	})
}
