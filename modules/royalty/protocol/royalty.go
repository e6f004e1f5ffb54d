package protocol

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
)

// RoyaltyInfo is the royalty recipient and rate of an asset.
type RoyaltyInfo struct {
	Recipient Address
	Rate      Rate
}

// Validate checks the rate range and rejects a non-zero royalty paid to the zero address.
func (r RoyaltyInfo) Validate() error {
	if err := r.Rate.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if !r.Rate.IsZero() && r.Recipient.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "royalty recipient cannot be the zero address")
	}
	return nil
}

// Owed returns the royalty owed for the given sale price.
func (r RoyaltyInfo) Owed(salePrice Amount) (Amount, error) {
	return OwedAmount(salePrice, r.Rate)
}
