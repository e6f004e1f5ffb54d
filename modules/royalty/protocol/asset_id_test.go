package protocol

import (
	"testing"

	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func TestNewAssetIDFromString(t *testing.T) {
	testcases := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{name: "zero", input: "0", expected: "0"},
		{name: "decimal", input: "42", expected: "42"},
		{name: "hex", input: "0x2a", expected: "42"},
		{name: "hex with leading zeros", input: "0x002a", expected: "42"},
		{name: "max uint256", input: maxUint256, expected: maxUint256},
		{name: "max uint256 hex", input: "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", expected: maxUint256},
		{name: "overflow", input: "115792089237316195423570985008687907853269984665640564039457584007913129639936", shouldError: true},
		{name: "overflow hex", input: "0x1ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", shouldError: true},
		{name: "negative", input: "-1", shouldError: true},
		{name: "not a number", input: "abc", shouldError: true},
		{name: "empty hex", input: "0x", shouldError: true},
		{name: "empty", input: "", shouldError: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := NewAssetIDFromString(tc.input)
			if tc.shouldError {
				assert.ErrorIs(t, err, errs.InvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id.String())
		})
	}
}

func TestAssetID(t *testing.T) {
	id := NewAssetID(42)
	assert.Equal(t, MustAssetID("42"), id, "asset ids must be comparable")
	assert.Equal(t, 0, id.Cmp(MustAssetID("0x2a")))
	assert.Equal(t, -1, id.Cmp(NewAssetID(43)))

	word := id.Bytes32()
	assert.Equal(t, byte(42), word[31])
	assert.Equal(t, id, NewAssetIDFromBytes32(word))

	// returned integer is a copy
	u := id.Uint256()
	u.SetUint64(1)
	assert.Equal(t, "42", id.String())
	assert.Equal(t, id, NewAssetIDFromUint256(uint256.NewInt(42)))

	m := map[AssetID]int{id: 1}
	assert.Equal(t, 1, m[MustAssetID("42")])
}
