package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// PurchaseLine is the per-line payload handed to the checkout collaborator
// for a purchase-cart checkout. UnitPriceCents already reflects the rental
// discount for rent lines.
type PurchaseLine struct {
	ItemID          uuid.UUID
	CatalogKind     enums.CatalogKind
	Title           string
	TransactionType enums.TransactionType
	UnitPriceCents  int64
}

// BorrowLine is one (item, library) pair of a bulk borrow checkout.
type BorrowLine struct {
	BookID    uuid.UUID
	LibraryID uuid.UUID
	Title     string
}

// CheckoutResult reports what the collaborator created.
type CheckoutResult struct {
	OrderID          uuid.UUID   `json:"order_id,omitempty"`
	BorrowRequestIDs []uuid.UUID `json:"borrow_request_ids,omitempty"`
}

// Gateway is the checkout collaborator. The purchase cart produces a single
// combined order; the borrow cart expands into one request per line. The
// gateway never touches the cart itself: clearing after a confirmed checkout
// is the caller's explicit follow-up.
type Gateway interface {
	PlaceOrder(ctx context.Context, buyerID uuid.UUID, lines []PurchaseLine) (*CheckoutResult, error)
	RequestBorrows(ctx context.Context, borrowerID uuid.UUID, lines []BorrowLine) (*CheckoutResult, error)
}
