package decimals

import (
	"math"
	"math/big"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/royalty-registry/pkg/logger"
	"github.com/gaze-network/royalty-registry/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	DefaultDivPrecision = 36
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ToDecimal convert an integer value to decimal.Decimal scaled down by 10^decimals.
// Unsupported types are treated as zero.
func ToDecimal[T Integer](ivalue any, decimals T) decimal.Decimal {
	switch {
	case int64(decimals) > math.MaxInt32:
		logger.Panic("ToDecimal: decimals is too big, should be equal less than 2^31-1", slogx.Any("decimals", decimals))
	case int64(decimals) < math.MinInt32+1:
		logger.Panic("ToDecimal: decimals is too small, should be greater than -2^31", slogx.Any("decimals", decimals))
	}
	return decimal.NewFromBigInt(toBig(ivalue), -int32(decimals))
}

func toBig(ivalue any) *big.Int {
	switch v := ivalue.(type) {
	case string:
		if value, ok := new(big.Int).SetString(v, 10); ok {
			return value
		}
	case *big.Int:
		return v
	case int:
		return big.NewInt(int64(v))
	case int32:
		return big.NewInt(int64(v))
	case int64:
		return big.NewInt(v)
	case uint:
		return new(big.Int).SetUint64(uint64(v))
	case uint32:
		return new(big.Int).SetUint64(uint64(v))
	case uint64:
		return new(big.Int).SetUint64(v)
	case uint128.Uint128:
		return v.Big()
	case uint256.Int:
		return v.ToBig()
	case *uint256.Int:
		return v.ToBig()
	}
	return new(big.Int)
}

// ToUint128 parses a human readable amount (e.g. "1.5") into its base unit integer
// representation using the given number of decimals (e.g. 1.5 with 18 decimals is 1500000000000000000).
// The amount must be non-negative, must not carry more fractional digits than decimals and must fit 128 bits.
func ToUint128(amount string, decimals uint16) (uint128.Uint128, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "invalid amount %q", amount)
	}
	if d.IsNegative() {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %q must not be negative", amount)
	}
	scaled := d.Mul(PowerOfTen(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %q has more than %d decimal places", amount, decimals)
	}
	value := scaled.BigInt()
	u128, err := uint128.FromBig(value)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.OverflowUint128, "amount %q", amount)
	}
	return u128, nil
}
