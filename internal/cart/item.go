package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// ItemSnapshot is the immutable catalog value captured when an item is
// carted. All three catalog kinds (book, ebook, product) normalize into this
// one shape; fields that do not apply to a kind stay nil.
type ItemSnapshot struct {
	ItemID         uuid.UUID         `json:"item_id"`
	Kind           enums.CatalogKind `json:"kind"`
	Title          string            `json:"title"`
	Author         string            `json:"author,omitempty"`
	PriceCents     int64             `json:"price_cents"`
	RentPriceCents *int64            `json:"rent_price_cents,omitempty"`
	LibraryID      *uuid.UUID        `json:"library_id,omitempty"`
}

// LineItem is one entry in a cart collection. ID is the composite key used
// for de-duplication; AddedAt orders the display only.
type LineItem struct {
	ID              string                `json:"id"`
	Item            ItemSnapshot          `json:"item"`
	TransactionType enums.TransactionType `json:"transaction_type"`
	LibraryID       *uuid.UUID            `json:"library_id,omitempty"`
	AddedAt         time.Time             `json:"added_at"`
}

// PurchaseLineID derives the composite key for a purchase-cart line. Buy and
// rent lines for the same item are distinct entries.
func PurchaseLineID(itemID uuid.UUID, tx enums.TransactionType) string {
	return fmt.Sprintf("%s:%s", itemID, tx)
}

// BorrowLineID derives the composite key for a borrow-cart line. The borrow
// cart is keyed by item alone, prefixed with the cart discriminator.
func BorrowLineID(itemID uuid.UUID) string {
	return fmt.Sprintf("borrow:%s", itemID)
}

// LineIDFor picks the composite key appropriate for the cart kind.
func LineIDFor(kind enums.CartKind, itemID uuid.UUID, tx enums.TransactionType) string {
	if kind == enums.CartKindBorrow {
		return BorrowLineID(itemID)
	}
	return PurchaseLineID(itemID, tx)
}
