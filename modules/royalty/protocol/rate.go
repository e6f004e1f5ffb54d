package protocol

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/pkg/decimals"
	"github.com/shopspring/decimal"
)

// Rate is a fixed-point royalty rate. The percentage is Rate / RateScale, e.g. 250000 is 2.5%.
// Zero means no royalty.
type Rate uint32

const (
	RateDecimals      = 5
	RateScale    Rate = 100000
	MaxRate      Rate = 10_000_000
)

// NewRate validates the rate numerator. Rates above MaxRate fail with errs.MalformedRate.
func NewRate(v uint64) (Rate, error) {
	if v > uint64(MaxRate) {
		return 0, errors.Wrapf(errs.MalformedRate, "rate %d exceeds maximum %d", v, MaxRate)
	}
	return Rate(v), nil
}

// NewRateFromPercent converts a percentage (e.g. "2.5") to a Rate.
// The percentage must not have more than 5 decimal places.
func NewRateFromPercent(percent string) (Rate, error) {
	d, err := decimal.NewFromString(percent)
	if err != nil {
		return 0, errors.Wrapf(errs.MalformedRate, "invalid percentage %q", percent)
	}
	scaled := d.Shift(RateDecimals)
	if scaled.IsNegative() || !scaled.Equal(scaled.Truncate(0)) {
		return 0, errors.Wrapf(errs.MalformedRate, "invalid percentage %q", percent)
	}
	if scaled.GreaterThan(decimal.NewFromInt(int64(MaxRate))) {
		return 0, errors.Wrapf(errs.MalformedRate, "percentage %q exceeds maximum", percent)
	}
	return Rate(scaled.IntPart()), nil
}

func (r Rate) Validate() error {
	if r > MaxRate {
		return errors.Wrapf(errs.MalformedRate, "rate %d exceeds maximum %d", r, MaxRate)
	}
	return nil
}

func (r Rate) IsZero() bool {
	return r == 0
}

// Percent returns the percentage represented by the rate.
func (r Rate) Percent() decimal.Decimal {
	return decimals.ToDecimal(uint32(r), RateDecimals)
}
