package protocol

import (
	"testing"

	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector(t *testing.T) {
	assert.Equal(t, "0xcef6d368", Selector(RoyaltyInfoSignature).String())
	assert.Equal(t, "0x8589ff45", Selector(ReceivedRoyaltiesSignature).String())
	assert.Equal(t, "0x01ffc9a7", Selector(SupportsInterfaceSignature).String())

	assert.Equal(t, "0x4b7f2c2d", InterfaceIDRoyalty.String())
	assert.Equal(t, uint32(0x4b7f2c2d), InterfaceIDRoyalty.Uint32())
	assert.Equal(t, InterfaceIDERC165, Selector(SupportsInterfaceSignature))
}

func TestSupportsInterface(t *testing.T) {
	testcases := []struct {
		input    string
		expected bool
	}{
		{"0x4b7f2c2d", true},
		{"4B7F2C2D", true},
		{"erc2981-royalty-v1", true},
		{"ERC2981-Royalty-V1", true},
		{"0x01ffc9a7", true},
		{"erc165", true},
		{"0xffffffff", false},
		{"0x00000000", false},
		{"0x80ac58cd", false}, // ERC-721
		{"0x2a55205a", false}, // ERC-2981 final
	}
	for _, tc := range testcases {
		t.Run(tc.input, func(t *testing.T) {
			id, err := NewInterfaceIDFromString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, SupportsInterface(id))
		})
	}
	assert.False(t, SupportsInterface(InterfaceIDInvalid))
}

func TestNewInterfaceIDFromString(t *testing.T) {
	for _, input := range []string{"", "0x", "0x4b7f2c", "0x4b7f2c2d00", "0xzzzzzzzz", "unknown-tag"} {
		t.Run(input, func(t *testing.T) {
			_, err := NewInterfaceIDFromString(input)
			assert.ErrorIs(t, err, errs.InvalidArgument)
		})
	}

	var id InterfaceID
	require.NoError(t, id.UnmarshalText([]byte("erc2981-royalty-v1")))
	assert.Equal(t, InterfaceIDRoyalty, id)
	text, err := id.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0x4b7f2c2d", string(text))
}
