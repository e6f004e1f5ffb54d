package protocol

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

// Amount is an amount in the smallest unit of the payment token.
type Amount = uint128.Uint128

var rateScale = uint256.NewInt(uint64(RateScale))

// OwedAmount returns price * rate / RateScale, truncated toward zero.
// The product is computed in 256 bits, so only a result above 128 bits fails, with errs.OverflowUint128.
func OwedAmount(price Amount, rate Rate) (Amount, error) {
	if rate.IsZero() || price.IsZero() {
		return uint128.Zero, nil
	}
	p := uint256.Int{price.Lo, price.Hi, 0, 0}
	r := uint256.NewInt(uint64(rate))
	owed, overflow := new(uint256.Int).MulDivOverflow(&p, r, rateScale)
	if overflow || owed[2] != 0 || owed[3] != 0 {
		return uint128.Zero, errors.Wrapf(errs.OverflowUint128, "owed amount of price %s at rate %d", price, rate)
	}
	return uint128.Uint128{Lo: owed[0], Hi: owed[1]}, nil
}
