package decimals

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerOfTen(t *testing.T) {
	for n := int64(-maxCachedPowerOfTen); n <= 40; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			expected := powerOfTenString(n)
			actual := PowerOfTen(n)
			assert.Equal(t, expected, actual.String())
		})
	}
	t.Run("cached", func(t *testing.T) {
		require.Len(t, powerOfTen, 2*maxCachedPowerOfTen+1)
		for n, p := range powerOfTen {
			assert.True(t, p.Equal(PowerOfTen(n)))
		}
	})
}

// powerOfTenString add zero padding to power of ten string
func powerOfTenString(n int64) string {
	if n < 0 {
		return "0." + strings.Repeat("0", int(-n-1)) + "1"
	}
	return "1" + strings.Repeat("0", int(n))
}
