package enums

import "fmt"

// TransactionType distinguishes how a carted item will be acquired.
type TransactionType string

const (
	TransactionBuy    TransactionType = "buy"
	TransactionRent   TransactionType = "rent"
	TransactionBorrow TransactionType = "borrow"
)

var validTransactionTypes = []TransactionType{
	TransactionBuy,
	TransactionRent,
	TransactionBorrow,
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionType.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// AllowedIn reports whether the transaction type may appear in the given cart.
// Buy and rent lines live in the purchase cart; borrow lines in the borrow cart.
func (t TransactionType) AllowedIn(kind CartKind) bool {
	switch kind {
	case CartKindPurchase:
		return t == TransactionBuy || t == TransactionRent
	case CartKindBorrow:
		return t == TransactionBorrow
	}
	return false
}

// ParseTransactionType converts raw input into a TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
