package protocol

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"golang.org/x/crypto/sha3"
)

// Function signatures of the royalty interface.
const (
	RoyaltyInfoSignature       = "royaltyInfo(uint256)"
	ReceivedRoyaltiesSignature = "receivedRoyalties(address,address,uint256,address,uint256)"
	SupportsInterfaceSignature = "supportsInterface(bytes4)"
)

// Named capability tags.
const (
	TagRoyalty = "erc2981-royalty-v1"
	TagERC165  = "erc165"
)

// InterfaceID is a 4-byte capability tag.
type InterfaceID [4]byte

var (
	// InterfaceIDRoyalty is 0x4b7f2c2d, the XOR of the royaltyInfo and receivedRoyalties selectors.
	InterfaceIDRoyalty = Selector(RoyaltyInfoSignature).Xor(Selector(ReceivedRoyaltiesSignature))

	// InterfaceIDERC165 is 0x01ffc9a7, the capability discovery interface itself.
	InterfaceIDERC165 = Selector(SupportsInterfaceSignature)

	// InterfaceIDInvalid is never supported.
	InterfaceIDInvalid = InterfaceID{0xff, 0xff, 0xff, 0xff}
)

var interfaceTags = map[string]InterfaceID{
	TagRoyalty: InterfaceIDRoyalty,
	TagERC165:  InterfaceIDERC165,
}

// Selector returns the first 4 bytes of the keccak-256 hash of a function signature.
func Selector(signature string) InterfaceID {
	hash := keccak256([]byte(signature))
	return InterfaceID(hash[:4])
}

// NewInterfaceIDFromString parses a named tag (e.g. `erc2981-royalty-v1`) or a 4-byte hex id (e.g. `0x4b7f2c2d`).
func NewInterfaceIDFromString(str string) (InterfaceID, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	if id, ok := interfaceTags[s]; ok {
		return id, nil
	}
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 8 {
		return InterfaceID{}, errors.Wrapf(errs.InvalidArgument, "invalid interface id %q: must be a known tag or 4 bytes hex", str)
	}
	var id InterfaceID
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return InterfaceID{}, errors.Wrapf(errs.InvalidArgument, "invalid interface id %q: %v", str, err)
	}
	return id, nil
}

// SupportsInterface reports whether the registry implements the given interface.
// It's true for the royalty and ERC-165 interfaces only, and always false for 0xffffffff.
func SupportsInterface(id InterfaceID) bool {
	switch id {
	case InterfaceIDRoyalty, InterfaceIDERC165:
		return true
	default:
		return false
	}
}

func (i InterfaceID) Xor(other InterfaceID) InterfaceID {
	var result InterfaceID
	for n := range i {
		result[n] = i[n] ^ other[n]
	}
	return result
}

func (i InterfaceID) Uint32() uint32 {
	return binary.BigEndian.Uint32(i[:])
}

func (i InterfaceID) String() string {
	return "0x" + hex.EncodeToString(i[:])
}

func (i InterfaceID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *InterfaceID) UnmarshalText(text []byte) error {
	id, err := NewInterfaceIDFromString(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*i = id
	return nil
}

func keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		_, _ = h.Write(b)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
