package royaltyclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/pkg/httpclient"
	"github.com/gaze-network/royalty-registry/pkg/middleware/requestcontext"
	"github.com/gaze-network/uint128"
)

const apiPrefix = "/royalty/v1"

type Config struct {
	BaseURL string `mapstructure:"base_url"`

	// Caller is the address sent as the caller of every request, e.g. the marketplace address.
	Caller       string        `mapstructure:"caller"`
	CallerHeader string        `mapstructure:"caller_header"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// Client is the HTTP client of a royalty registry.
type Client struct {
	httpClient *httpclient.Client
}

func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "base url is required")
	}
	headers := make(map[string]string)
	if config.Caller != "" {
		caller, err := protocol.NewAddressFromString(config.Caller)
		if err != nil {
			return nil, errors.Wrap(err, "invalid caller address")
		}
		headers[utils.Default(config.CallerHeader, requestcontext.DefaultCallerHeader)] = caller.String()
	}
	httpClient, err := httpclient.New(config.BaseURL, httpclient.Config{
		Debug:   config.Debug,
		Headers: headers,
		Timeout: config.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{
		httpClient: httpClient,
	}, nil
}

// statusKinds maps registry response status codes to error kinds.
var statusKinds = map[int]errs.ErrorKind{
	http.StatusNotFound:   errs.NotFound,
	http.StatusForbidden:  errs.Unauthorized,
	http.StatusConflict:   errs.Conflict,
	http.StatusBadRequest: errs.InvalidArgument,
}

// do sends the request and decodes the result of the registry response into out.
func (c *Client) do(ctx context.Context, method, path string, opts httpclient.RequestOptions, out any) error {
	resp, err := c.httpClient.Do(ctx, method, apiPrefix+path, opts)
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}

	var body common.HttpResponse[json.RawMessage]
	if err := resp.UnmarshalBody(&body); err != nil {
		if !resp.IsSuccess() {
			return errors.Wrapf(errs.SomethingWentWrong, "registry responded %d", resp.StatusCode())
		}
		return errors.WithStack(err)
	}
	if !resp.IsSuccess() || body.Error != nil {
		message := "unknown error"
		if body.Error != nil {
			message = *body.Error
		}
		kind, ok := statusKinds[resp.StatusCode()]
		if !ok {
			kind = errs.SomethingWentWrong
		}
		return errors.Wrapf(kind, "registry responded %d: %s", resp.StatusCode(), message)
	}
	if out == nil || body.Result == nil {
		return nil
	}
	if err := json.Unmarshal(*body.Result, out); err != nil {
		return errors.Wrap(err, "can't unmarshal result")
	}
	return nil
}

// SupportsInterface reports whether the registry implements the given interface.
func (c *Client) SupportsInterface(ctx context.Context, id protocol.InterfaceID) (bool, error) {
	var result struct {
		Supported bool `json:"supported"`
	}
	if err := c.do(ctx, http.MethodGet, "/interfaces/"+id.String(), httpclient.RequestOptions{}, &result); err != nil {
		return false, errors.WithStack(err)
	}
	return result.Supported, nil
}

type royaltyInfoResult struct {
	Receiver    protocol.Address `json:"receiver"`
	RoyaltyRate protocol.Rate    `json:"royaltyRate"`
}

// RoyaltyInfo returns the royalty receiver and rate of the asset.
func (c *Client) RoyaltyInfo(ctx context.Context, assetId protocol.AssetID) (protocol.RoyaltyInfo, error) {
	var result royaltyInfoResult
	if err := c.do(ctx, http.MethodGet, "/info/"+assetId.String(), httpclient.RequestOptions{}, &result); err != nil {
		return protocol.RoyaltyInfo{}, errors.WithStack(err)
	}
	return protocol.RoyaltyInfo{Recipient: result.Receiver, Rate: result.RoyaltyRate}, nil
}

type Quote struct {
	Royalty   protocol.RoyaltyInfo
	SalePrice protocol.Amount
	Owed      protocol.Amount
}

// Quote asks the registry for the royalty owed when selling the asset at salePrice.
func (c *Client) Quote(ctx context.Context, assetId protocol.AssetID, salePrice protocol.Amount) (*Quote, error) {
	var result struct {
		royaltyInfoResult
		RoyaltyAmount string `json:"royaltyAmount"`
	}
	if err := c.do(ctx, http.MethodGet, "/quote/"+assetId.String(), httpclient.RequestOptions{
		Query: url.Values{"salePrice": {salePrice.String()}},
	}, &result); err != nil {
		return nil, errors.WithStack(err)
	}
	owed, err := uint128.FromString(result.RoyaltyAmount)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid royalty amount %q", result.RoyaltyAmount)
	}
	return &Quote{
		Royalty:   protocol.RoyaltyInfo{Recipient: result.Receiver, Rate: result.RoyaltyRate},
		SalePrice: salePrice,
		Owed:      owed,
	}, nil
}

// Receipt is the registry record of an accepted payment notification.
type Receipt struct {
	Sequence       int64 `json:"sequence"`
	RoyaltyVersion int64 `json:"royaltyVersion"`
	ReceivedAt     int64 `json:"receivedAt"`
}

// ReceivedRoyalties notifies the registry that royalties were paid. It doesn't move any funds.
func (c *Client) ReceivedRoyalties(ctx context.Context, notification protocol.PaymentNotification) (*Receipt, error) {
	payload := map[string]string{
		"royaltyRecipient": notification.RoyaltyRecipient.String(),
		"buyer":            notification.Buyer.String(),
		"tokenId":          notification.TokenID.String(),
		"amount":           notification.Amount.String(),
	}
	if notification.TokenPaid != nil {
		payload["tokenPaid"] = notification.TokenPaid.String()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal payload")
	}

	var receipt Receipt
	if err := c.do(ctx, http.MethodPost, "/received", httpclient.RequestOptions{Body: body}, &receipt); err != nil {
		return nil, errors.WithStack(err)
	}
	return &receipt, nil
}
