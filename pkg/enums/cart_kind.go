package enums

import "fmt"

// CartKind selects one of the two independent cart collections.
type CartKind string

const (
	CartKindPurchase CartKind = "purchase"
	CartKindBorrow   CartKind = "borrow"
)

var validCartKinds = []CartKind{
	CartKindPurchase,
	CartKindBorrow,
}

// String implements fmt.Stringer.
func (c CartKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartKind.
func (c CartKind) IsValid() bool {
	for _, candidate := range validCartKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartKind converts raw input into a CartKind.
func ParseCartKind(value string) (CartKind, error) {
	for _, candidate := range validCartKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart kind %q", value)
}
