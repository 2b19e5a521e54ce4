package enums

import "fmt"

// CatalogKind tags the catalog entity variant behind a cart line item.
type CatalogKind string

const (
	CatalogKindBook    CatalogKind = "book"
	CatalogKindEbook   CatalogKind = "ebook"
	CatalogKindProduct CatalogKind = "product"
)

var validCatalogKinds = []CatalogKind{
	CatalogKindBook,
	CatalogKindEbook,
	CatalogKindProduct,
}

// String implements fmt.Stringer.
func (c CatalogKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogKind.
func (c CatalogKind) IsValid() bool {
	for _, candidate := range validCatalogKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogKind converts raw input into a CatalogKind.
func ParseCatalogKind(value string) (CatalogKind, error) {
	for _, candidate := range validCatalogKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog kind %q", value)
}
