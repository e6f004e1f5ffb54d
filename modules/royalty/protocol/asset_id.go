package protocol

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/holiman/uint256"
)

// AssetID is an opaque unsigned 256-bit asset identifier. It's comparable and can be used as a map key.
type AssetID struct {
	value uint256.Int
}

func NewAssetID(v uint64) AssetID {
	return AssetID{value: *uint256.NewInt(v)}
}

func NewAssetIDFromUint256(v *uint256.Int) AssetID {
	return AssetID{value: *v}
}

func NewAssetIDFromBytes32(b [32]byte) AssetID {
	var id AssetID
	id.value.SetBytes32(b[:])
	return id
}

// NewAssetIDFromString parses a decimal asset id, or a hex asset id prefixed with `0x`.
func NewAssetIDFromString(str string) (AssetID, error) {
	s := strings.TrimSpace(str)
	if s == "" {
		return AssetID{}, errors.Wrap(errs.InvalidArgument, "asset id cannot be empty")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, ok := new(big.Int).SetString(s[2:], 16)
		if !ok || s[2:] == "" {
			return AssetID{}, errors.Wrapf(errs.InvalidArgument, "invalid hex asset id %q", str)
		}
		var id AssetID
		if overflow := id.value.SetFromBig(b); overflow {
			return AssetID{}, errors.Wrapf(errs.InvalidArgument, "asset id %q exceeds 256 bits", str)
		}
		return id, nil
	}
	if s[0] == '+' || s[0] == '-' {
		return AssetID{}, errors.Wrapf(errs.InvalidArgument, "invalid asset id %q: sign is not allowed", str)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return AssetID{}, errors.Wrapf(errs.InvalidArgument, "invalid asset id %q: %v", str, err)
	}
	return AssetID{value: *v}, nil
}

// MustAssetID is like NewAssetIDFromString but panics on error.
func MustAssetID(str string) AssetID {
	id, err := NewAssetIDFromString(str)
	if err != nil {
		panic(err)
	}
	return id
}

// Uint256 returns a copy of the underlying integer.
func (id AssetID) Uint256() *uint256.Int {
	return id.value.Clone()
}

// Bytes32 returns the big-endian 32 bytes representation.
func (id AssetID) Bytes32() [32]byte {
	return id.value.Bytes32()
}

func (id AssetID) Cmp(other AssetID) int {
	return id.value.Cmp(&other.value)
}

// String returns the decimal representation.
func (id AssetID) String() string {
	return id.value.Dec()
}

func (id AssetID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *AssetID) UnmarshalText(text []byte) error {
	parsed, err := NewAssetIDFromString(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*id = parsed
	return nil
}
