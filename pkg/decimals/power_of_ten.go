package decimals

import (
	"github.com/shopspring/decimal"
)

const maxCachedPowerOfTen = 36

var powerOfTen = func() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, 2*maxCachedPowerOfTen+1)
	for n := int64(-maxCachedPowerOfTen); n <= maxCachedPowerOfTen; n++ {
		m[n] = decimal.New(1, int32(n))
	}
	return m
}()

// PowerOfTen returns 10^n. Results for |n| <= 36 are precomputed.
func PowerOfTen[T Integer](n T) decimal.Decimal {
	nInt64 := int64(n)
	if val, ok := powerOfTen[nInt64]; ok {
		return val
	}
	return powerOfTen[1].Pow(decimal.NewFromInt(nInt64))
}
