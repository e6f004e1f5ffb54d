package protocol

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

// ReceivedRoyaltiesEventSignature is the signature of the payment notification event.
const ReceivedRoyaltiesEventSignature = "ReceivedRoyalties(address,address,uint256,address,uint256)"

// ReceivedRoyaltiesTopic is the keccak-256 hash of ReceivedRoyaltiesEventSignature,
// 0x096a55ec842afaa98cb78cb0352921e73c0d1caa9136309fa9c07f13f4a39a60.
var ReceivedRoyaltiesTopic = Hash(keccak256([]byte(ReceivedRoyaltiesEventSignature)))

const wordSize = 32

type Hash [32]byte

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Log is an event log entry. Topics hold the event topic followed by the indexed fields,
// Data holds the non-indexed fields as 32-byte words.
type Log struct {
	Topics []Hash
	Data   []byte
}

// EncodeReceivedRoyalties encodes the notification as a ReceivedRoyalties event log.
// Recipient, buyer and token id are indexed. Native currency is encoded as the zero address.
func EncodeReceivedRoyalties(n PaymentNotification) Log {
	tokenPaid := ZeroAddress
	if n.TokenPaid != nil {
		tokenPaid = *n.TokenPaid
	}
	amount := uint256.Int{n.Amount.Lo, n.Amount.Hi, 0, 0}
	amountWord := amount.Bytes32()
	tokenPaidWord := addressWord(tokenPaid)

	data := make([]byte, 0, 2*wordSize)
	data = append(data, tokenPaidWord[:]...)
	data = append(data, amountWord[:]...)
	return Log{
		Topics: []Hash{
			ReceivedRoyaltiesTopic,
			addressWord(n.RoyaltyRecipient),
			addressWord(n.Buyer),
			n.TokenID.Bytes32(),
		},
		Data: data,
	}
}

// DecodeReceivedRoyalties decodes a ReceivedRoyalties event log. The zero token address decodes as native currency.
func DecodeReceivedRoyalties(log Log) (PaymentNotification, error) {
	if len(log.Topics) != 4 {
		return PaymentNotification{}, errors.Wrapf(errs.InvalidArgument, "expected 4 topics, got %d", len(log.Topics))
	}
	if log.Topics[0] != ReceivedRoyaltiesTopic {
		return PaymentNotification{}, errors.Wrapf(errs.InvalidArgument, "unexpected event topic %s", log.Topics[0])
	}
	if len(log.Data) != 2*wordSize {
		return PaymentNotification{}, errors.Wrapf(errs.InvalidArgument, "expected %d bytes of data, got %d", 2*wordSize, len(log.Data))
	}

	recipient, err := addressFromWord(log.Topics[1])
	if err != nil {
		return PaymentNotification{}, errors.Wrap(err, "invalid royalty recipient")
	}
	buyer, err := addressFromWord(log.Topics[2])
	if err != nil {
		return PaymentNotification{}, errors.Wrap(err, "invalid buyer")
	}
	tokenPaid, err := addressFromWord(Hash(log.Data[:wordSize]))
	if err != nil {
		return PaymentNotification{}, errors.Wrap(err, "invalid token paid")
	}

	var amount uint256.Int
	amount.SetBytes32(log.Data[wordSize:])
	if amount[2] != 0 || amount[3] != 0 {
		return PaymentNotification{}, errors.Wrapf(errs.OverflowUint128, "amount %s", amount.Dec())
	}

	n := PaymentNotification{
		RoyaltyRecipient: recipient,
		Buyer:            buyer,
		TokenID:          NewAssetIDFromBytes32(log.Topics[3]),
		Amount:           uint128.Uint128{Lo: amount[0], Hi: amount[1]},
	}
	if !tokenPaid.IsZero() {
		n.TokenPaid = &tokenPaid
	}
	return n, nil
}

func addressWord(addr Address) Hash {
	var word Hash
	copy(word[wordSize-AddressLength:], addr[:])
	return word
}

func addressFromWord(word Hash) (Address, error) {
	for _, b := range word[:wordSize-AddressLength] {
		if b != 0 {
			return Address{}, errors.Wrapf(errs.InvalidArgument, "word %s is not a left-padded address", word)
		}
	}
	return Address(word[wordSize-AddressLength:]), nil
}
