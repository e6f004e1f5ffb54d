package royaltyclient

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/pkg/errorhandler"
	"github.com/gaze-network/royalty-registry/pkg/middleware/requestcontext"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice       = protocol.MustAddress("0x52908400098527886e0f7030069857d2e4169ee7")
	marketplace = protocol.MustAddress("0xde709f2102306220921060314715629080e2fb77")
	buyer       = protocol.MustAddress("0x00000000000000000000000000000000000000b0")
	usdc        = protocol.MustAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
)

type fakeRegistry struct {
	mu            sync.Mutex
	royalties     map[string]protocol.RoyaltyInfo
	notifications []map[string]string
	notifiers     []string
	rejectNotify  bool
}

// serveRegistry starts a fake registry API and returns its base url.
func serveRegistry(t *testing.T, registry *fakeRegistry) string {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorhandler.NewHTTPErrorHandler(),
		DisableStartupMessage: true,
	})
	r := app.Group("/royalty/v1")
	r.Get("/interfaces/:id", func(c *fiber.Ctx) error {
		id, err := protocol.NewInterfaceIDFromString(c.Params("id"))
		if err != nil {
			return errs.WithPublicMessage(err, "")
		}
		return c.JSON(fiber.Map{"result": fiber.Map{"interfaceId": id, "supported": protocol.SupportsInterface(id)}})
	})
	r.Get("/info/:assetId", func(c *fiber.Ctx) error {
		registry.mu.Lock()
		defer registry.mu.Unlock()
		info, ok := registry.royalties[c.Params("assetId")]
		if !ok {
			return errs.NewPublicErrorKind(errs.NotFound, "asset not found")
		}
		return c.JSON(fiber.Map{"result": fiber.Map{"receiver": info.Recipient, "royaltyRate": info.Rate}})
	})
	r.Get("/quote/:assetId", func(c *fiber.Ctx) error {
		registry.mu.Lock()
		defer registry.mu.Unlock()
		info := registry.royalties[c.Params("assetId")]
		price, err := uint128.FromString(c.Query("salePrice"))
		if err != nil {
			return errs.WithPublicMessage(err, "validation error")
		}
		owed, err := info.Owed(price)
		if err != nil {
			return errs.WithPublicMessage(err, "")
		}
		return c.JSON(fiber.Map{"result": fiber.Map{"receiver": info.Recipient, "royaltyRate": info.Rate, "royaltyAmount": owed.String()}})
	})
	r.Post("/received", func(c *fiber.Ctx) error {
		registry.mu.Lock()
		defer registry.mu.Unlock()
		if registry.rejectNotify {
			return errs.NewPublicErrorKind(errs.Unauthorized, "caller is not allowed to report payments")
		}
		var body map[string]string
		if err := c.BodyParser(&body); err != nil {
			return err
		}
		registry.notifications = append(registry.notifications, body)
		registry.notifiers = append(registry.notifiers, c.Get(requestcontext.DefaultCallerHeader))
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"result": fiber.Map{"sequence": len(registry.notifications), "royaltyVersion": 1}})
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(Config{BaseURL: baseURL, Caller: marketplace.String()})
	require.NoError(t, err)
	return client
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	registry := &fakeRegistry{royalties: map[string]protocol.RoyaltyInfo{"1": {Recipient: alice, Rate: 250000}}}
	baseURL := serveRegistry(t, registry)
	client := newClient(t, baseURL)

	t.Run("supports interface", func(t *testing.T) {
		supported, err := client.SupportsInterface(ctx, protocol.InterfaceIDRoyalty)
		require.NoError(t, err)
		assert.True(t, supported)
		supported, err = client.SupportsInterface(ctx, protocol.InterfaceIDInvalid)
		require.NoError(t, err)
		assert.False(t, supported)
	})
	t.Run("royalty info", func(t *testing.T) {
		info, err := client.RoyaltyInfo(ctx, protocol.NewAssetID(1))
		require.NoError(t, err)
		assert.Equal(t, protocol.RoyaltyInfo{Recipient: alice, Rate: 250000}, info)

		_, err = client.RoyaltyInfo(ctx, protocol.NewAssetID(404))
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("quote", func(t *testing.T) {
		quote, err := client.Quote(ctx, protocol.NewAssetID(1), uint128.From64(1_000_000))
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(2_500_000), quote.Owed)
		assert.Equal(t, alice, quote.Royalty.Recipient)
	})
	t.Run("received royalties", func(t *testing.T) {
		receipt, err := client.ReceivedRoyalties(ctx, protocol.PaymentNotification{
			RoyaltyRecipient: alice,
			Buyer:            buyer,
			TokenID:          protocol.NewAssetID(1),
			TokenPaid:        &usdc,
			Amount:           uint128.From64(2_500_000),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, receipt.Sequence)

		require.Len(t, registry.notifications, 1)
		assert.Equal(t, marketplace.String(), registry.notifiers[0])
		assert.Equal(t, map[string]string{
			"royaltyRecipient": alice.String(),
			"buyer":            buyer.String(),
			"tokenId":          "1",
			"tokenPaid":        usdc.String(),
			"amount":           "2500000",
		}, registry.notifications[0])
	})
	t.Run("invalid config", func(t *testing.T) {
		_, err := New(Config{})
		assert.ErrorIs(t, err, errs.InvalidArgument)
		_, err = New(Config{BaseURL: baseURL, Caller: "0x1"})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

type fakeTransferer struct {
	calls  int
	to     protocol.Address
	token  *protocol.Address
	amount protocol.Amount
	err    error
}

func (f *fakeTransferer) Transfer(ctx context.Context, to protocol.Address, token *protocol.Address, amount protocol.Amount) (*TransferReceipt, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.to, f.token, f.amount = to, token, amount
	return &TransferReceipt{Reference: "tx-1"}, nil
}

func TestPay(t *testing.T) {
	ctx := context.Background()
	payment := Payment{
		AssetID:   protocol.NewAssetID(1),
		Buyer:     buyer,
		SalePrice: uint128.From64(1_000_000),
	}

	t.Run("paid and notified", func(t *testing.T) {
		registry := &fakeRegistry{royalties: map[string]protocol.RoyaltyInfo{"1": {Recipient: alice, Rate: 50000}}}
		baseURL := serveRegistry(t, registry)

		transferer := &fakeTransferer{}
		result, err := newClient(t, baseURL).Pay(ctx, transferer, payment)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(500_000), result.Owed)
		assert.Equal(t, "tx-1", result.Transfer.Reference)
		require.NotNil(t, result.Receipt)
		assert.EqualValues(t, 1, result.Receipt.Sequence)

		assert.Equal(t, 1, transferer.calls)
		assert.Equal(t, alice, transferer.to)
		assert.Nil(t, transferer.token)
		assert.Equal(t, uint128.From64(500_000), transferer.amount)
		require.Len(t, registry.notifications, 1)
		assert.Equal(t, "500000", registry.notifications[0]["amount"])
	})
	t.Run("nothing owed", func(t *testing.T) {
		registry := &fakeRegistry{royalties: map[string]protocol.RoyaltyInfo{"1": {}}}
		baseURL := serveRegistry(t, registry)

		transferer := &fakeTransferer{}
		result, err := newClient(t, baseURL).Pay(ctx, transferer, payment)
		require.NoError(t, err)
		assert.True(t, result.Owed.IsZero())
		assert.Nil(t, result.Transfer)
		assert.Zero(t, transferer.calls)
		assert.Empty(t, registry.notifications)
	})
	t.Run("unknown asset", func(t *testing.T) {
		baseURL := serveRegistry(t, &fakeRegistry{})
		transferer := &fakeTransferer{}
		_, err := newClient(t, baseURL).Pay(ctx, transferer, payment)
		assert.ErrorIs(t, err, errs.NotFound)
		assert.Zero(t, transferer.calls)
	})
	t.Run("transfer failed", func(t *testing.T) {
		baseURL := serveRegistry(t, &fakeRegistry{royalties: map[string]protocol.RoyaltyInfo{"1": {Recipient: alice, Rate: 50000}}})

		expected := errors.New("insufficient balance")
		_, err := newClient(t, baseURL).Pay(ctx, &fakeTransferer{err: expected}, payment)
		assert.ErrorIs(t, err, expected)
		assert.NotErrorIs(t, err, ErrNotifyFailed)
	})
	t.Run("notify failed", func(t *testing.T) {
		baseURL := serveRegistry(t, &fakeRegistry{
			royalties:    map[string]protocol.RoyaltyInfo{"1": {Recipient: alice, Rate: 50000}},
			rejectNotify: true,
		})

		transferer := &fakeTransferer{}
		result, err := newClient(t, baseURL).Pay(ctx, transferer, payment)
		assert.ErrorIs(t, err, ErrNotifyFailed)
		assert.ErrorIs(t, err, errs.Unauthorized)
		require.NotNil(t, result)
		assert.Equal(t, "tx-1", result.Transfer.Reference)
		assert.Nil(t, result.Receipt)
		assert.Equal(t, 1, transferer.calls, "transfer must not be retried")
	})
}
