package cmd

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/modules/royalty/protocol"
	"github.com/gaze-network/royalty-registry/pkg/decimals"
	"github.com/gaze-network/royalty-registry/pkg/royaltyclient"
	"github.com/spf13/cobra"
)

type quoteCmdOptions struct {
	Server   string
	Asset    string
	Price    string
	Decimals uint16
	Timeout  time.Duration
}

func NewQuoteCommand() *cobra.Command {
	opts := &quoteCmdOptions{}

	cmd := &cobra.Command{
		Use:     "quote",
		Short:   "Ask a royalty registry for the royalty owed on a sale",
		Example: `royalty quote --server http://localhost:8080 --asset 1 --price 1.5 --decimals 18`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return quoteHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Server, "server", "http://localhost:8080", "Base url of the royalty registry")
	flags.StringVar(&opts.Asset, "asset", "", "Asset id, decimal or 0x-prefixed hex")
	flags.StringVar(&opts.Price, "price", "", "Sale price in token units, E.g. `1.5`")
	flags.Uint16Var(&opts.Decimals, "decimals", 0, "Decimals of the payment token. Price is read as base units if zero")
	flags.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Request timeout")

	return cmd
}

func quoteHandler(opts *quoteCmdOptions, cmd *cobra.Command, _ []string) error {
	if opts.Asset == "" || opts.Price == "" {
		return errors.Wrap(errs.InvalidArgument, "--asset and --price are required")
	}
	assetId, err := protocol.NewAssetIDFromString(opts.Asset)
	if err != nil {
		return errors.Wrap(err, "invalid asset id")
	}
	salePrice, err := decimals.ToUint128(opts.Price, opts.Decimals)
	if err != nil {
		return errors.Wrap(err, "invalid price")
	}

	client, err := royaltyclient.New(royaltyclient.Config{
		BaseURL: opts.Server,
		Timeout: opts.Timeout,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	quote, err := client.Quote(cmd.Context(), assetId, salePrice)
	if err != nil {
		return errors.Wrap(err, "failed to get quote")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "receiver: %s\n", quote.Royalty.Recipient)
	fmt.Fprintf(out, "royalty:  %s%% (rate %d)\n", quote.Royalty.Rate.Percent().String(), quote.Royalty.Rate)
	fmt.Fprintf(out, "price:    %s\n", quote.SalePrice)
	fmt.Fprintf(out, "owed:     %s (%s)\n", quote.Owed, decimals.ToDecimal(quote.Owed, opts.Decimals).String())
	return nil
}
