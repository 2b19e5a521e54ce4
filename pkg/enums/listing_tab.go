package enums

import "fmt"

// ListingTab identifies one step of the product-listing wizard.
type ListingTab string

const (
	ListingTabBasic     ListingTab = "basic"
	ListingTabDetails   ListingTab = "details"
	ListingTabImages    ListingTab = "images"
	ListingTabInventory ListingTab = "inventory"
)

// ListingTabOrder is the fixed navigation order of the wizard.
var ListingTabOrder = []ListingTab{
	ListingTabBasic,
	ListingTabDetails,
	ListingTabImages,
	ListingTabInventory,
}

// String implements fmt.Stringer.
func (l ListingTab) String() string {
	return string(l)
}

// IsValid reports whether the value is a known ListingTab.
func (l ListingTab) IsValid() bool {
	for _, candidate := range ListingTabOrder {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseListingTab converts raw input into a ListingTab.
func ParseListingTab(value string) (ListingTab, error) {
	for _, candidate := range ListingTabOrder {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing tab %q", value)
}
