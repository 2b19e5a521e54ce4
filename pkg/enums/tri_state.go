package enums

import "fmt"

// TriState models a toggle whose default is distinguishable from an explicit
// choice. The listing wizard treats only on/off as a decision; unset means
// the seller has not visited the control yet.
type TriState string

const (
	TriStateUnset TriState = "unset"
	TriStateOn    TriState = "on"
	TriStateOff   TriState = "off"
)

var validTriStates = []TriState{
	TriStateUnset,
	TriStateOn,
	TriStateOff,
}

// String implements fmt.Stringer.
func (t TriState) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TriState.
func (t TriState) IsValid() bool {
	for _, candidate := range validTriStates {
		if candidate == t {
			return true
		}
	}
	return false
}

// Decided reports whether the toggle has been explicitly chosen.
func (t TriState) Decided() bool {
	return t == TriStateOn || t == TriStateOff
}

// ParseTriState converts raw input into a TriState. Empty input maps to unset.
func ParseTriState(value string) (TriState, error) {
	if value == "" {
		return TriStateUnset, nil
	}
	for _, candidate := range validTriStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tri-state value %q", value)
}
