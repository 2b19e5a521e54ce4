package enums

import "fmt"

// BorrowStatus tracks a single library borrow request. Requests are
// independently approvable; approved and rejected are terminal.
type BorrowStatus string

const (
	BorrowStatusRequested BorrowStatus = "requested"
	BorrowStatusApproved  BorrowStatus = "approved"
	BorrowStatusRejected  BorrowStatus = "rejected"
)

var validBorrowStatuses = []BorrowStatus{
	BorrowStatusRequested,
	BorrowStatusApproved,
	BorrowStatusRejected,
}

// String implements fmt.Stringer.
func (b BorrowStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BorrowStatus.
func (b BorrowStatus) IsValid() bool {
	for _, candidate := range validBorrowStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// Terminal reports whether the request can no longer change state.
func (b BorrowStatus) Terminal() bool {
	return b == BorrowStatusApproved || b == BorrowStatusRejected
}

// ParseBorrowStatus converts raw input into a BorrowStatus.
func ParseBorrowStatus(value string) (BorrowStatus, error) {
	for _, candidate := range validBorrowStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid borrow status %q", value)
}
