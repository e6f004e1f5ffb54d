package decimals

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDecimal(t *testing.T) {
	t.Run("overflow_decimals", func(t *testing.T) {
		assert.NotPanics(t, func() { ToDecimal(1, math.MaxInt32-1) }, "in-range decimals shouldn't panic")
		assert.NotPanics(t, func() { ToDecimal(1, math.MinInt32+1) }, "in-range decimals shouldn't panic")
		assert.Panics(t, func() { ToDecimal(1, math.MaxInt32+1) }, "out of range decimals should panic")
		assert.Panics(t, func() { ToDecimal(1, math.MinInt32) }, "out of range decimals should panic")
	})
	t.Run("rates", func(t *testing.T) {
		// rates are fixed-point values with 5 decimals
		testcases := []struct {
			rate     uint32
			expected string
		}{
			{0, "0"},
			{1, "0.00001"},
			{2500, "0.025"},
			{100000, "1"},
			{500000, "5"},
			{10000000, "100"},
		}
		for _, tc := range testcases {
			t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
				assert.Equal(t, tc.expected, ToDecimal(tc.rate, 5).String())
			})
		}
	})
	t.Run("supported_types", func(t *testing.T) {
		typesConv := []func(uint64) any{
			func(i uint64) any { return int(i) },
			func(i uint64) any { return int32(i) },
			func(i uint64) any { return int64(i) },
			func(i uint64) any { return uint(i) },
			func(i uint64) any { return uint32(i) },
			func(i uint64) any { return i },
			func(i uint64) any { return fmt.Sprint(i) },
			func(i uint64) any { return new(big.Int).SetUint64(i) },
			func(i uint64) any { return uint128.From64(i) },
			func(i uint64) any { return *uint256.NewInt(i) },
			func(i uint64) any { return uint256.NewInt(i) },
		}
		for _, conv := range typesConv {
			input := conv(7)
			t.Run(fmt.Sprintf("%T", input), func(t *testing.T) {
				assert.Equal(t, "0.07", ToDecimal(input, 2).String())
			})
		}
		assert.True(t, ToDecimal(struct{}{}, 0).IsZero(), "unsupported types should be zero")
		assert.True(t, ToDecimal("not a number", 0).IsZero(), "invalid strings should be zero")
	})

	testcases := []struct {
		decimals uint16
		value    interface{}
		expected string
	}{
		{0, uint64(math.MaxUint64), "18446744073709551615"},
		{18, uint64(math.MaxUint64), "18.446744073709551615"},
		/* max uint128 */
		{0, uint128.Max, "340282366920938463463374607431768211455"},
		{36, uint128.Max, "340.282366920938463463374607431768211455"},
		/* max uint256 */
		{18, new(uint256.Int).SetAllOne(), "115792089237316195423570985008687907853269984665640564039457.584007913129639935"},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%d_%s", tc.decimals, tc.value), func(t *testing.T) {
			actual := ToDecimal(tc.value, tc.decimals)
			assert.Equal(t, tc.expected, actual.String())
		})
	}
}

func TestToUint128(t *testing.T) {
	testcases := []struct {
		amount   string
		decimals uint16
		expected string
		err      error
	}{
		{"0", 18, "0", nil},
		{"1", 0, "1", nil},
		{"1.5", 18, "1500000000000000000", nil},
		{"100", 6, "100000000", nil},
		{"0.000001", 6, "1", nil},
		{"340282366920938463463374607431768211455", 0, "340282366920938463463374607431768211455", nil},
		{"340282366920938463463374607431768211456", 0, "", errs.OverflowUint128},
		{"0.0000001", 6, "", errs.InvalidArgument},
		{"-1", 0, "", errs.InvalidArgument},
		{"abc", 0, "", errs.InvalidArgument},
		{"", 0, "", errs.InvalidArgument},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%s_%d", tc.amount, tc.decimals), func(t *testing.T) {
			actual, err := ToUint128(tc.amount, tc.decimals)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual.String())
		})
	}
}
