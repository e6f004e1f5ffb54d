package protocol

// PaymentNotification is the record of a reported royalty payment.
// RoyaltyRecipient, Buyer and TokenID are indexed.
type PaymentNotification struct {
	RoyaltyRecipient Address
	Buyer            Address
	TokenID          AssetID

	// TokenPaid is the payment token contract. nil means the native currency.
	TokenPaid *Address
	Amount    Amount
}

// IsNative reports whether the royalty was paid in the native currency.
func (n PaymentNotification) IsNative() bool {
	return n.TokenPaid == nil
}

// Equal reports whether both notifications have the same five fields.
func (n PaymentNotification) Equal(other PaymentNotification) bool {
	if n.RoyaltyRecipient != other.RoyaltyRecipient || n.Buyer != other.Buyer || n.TokenID != other.TokenID {
		return false
	}
	if n.IsNative() != other.IsNative() {
		return false
	}
	if !n.IsNative() && *n.TokenPaid != *other.TokenPaid {
		return false
	}
	return n.Amount.Equals(other.Amount)
}
