package protocol

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
)

const AddressLength = 20

// Address is a 20-byte account or contract address. The zero value is the zero address.
type Address [AddressLength]byte

var ZeroAddress Address

// NewAddressFromString parses a hex address. The `0x` prefix is optional and the hex is case-insensitive.
func NewAddressFromString(str string) (Address, error) {
	s := strings.TrimSpace(str)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*AddressLength {
		return Address{}, errors.Wrapf(errs.InvalidArgument, "invalid address %q: must be %d hex characters", str, 2*AddressLength)
	}
	var addr Address
	if _, err := hex.Decode(addr[:], []byte(s)); err != nil {
		return Address{}, errors.Wrapf(errs.InvalidArgument, "invalid address %q: %v", str, err)
	}
	return addr, nil
}

// NewAddressFromBytes creates an address from exactly 20 bytes.
func NewAddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return Address{}, errors.Wrapf(errs.InvalidArgument, "invalid address length %d", len(b))
	}
	return Address(b), nil
}

// MustAddress is like NewAddressFromString but panics on error.
func MustAddress(str string) Address {
	addr, err := NewAddressFromString(str)
	if err != nil {
		panic(err)
	}
	return addr
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) Bytes() []byte {
	return a[:]
}

// String returns `0x` followed by 40 lowercase hex characters.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddressFromString(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*a = addr
	return nil
}
