package catalog

import (
	"github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// The three catalog kinds collapse into one snapshot shape at cart-insertion
// time. Fields a kind does not carry stay nil; the cart never looks back at
// the catalog row.

// SnapshotFromBook normalizes a physical book.
func SnapshotFromBook(book *models.Book) cart.ItemSnapshot {
	return cart.ItemSnapshot{
		ItemID:         book.ID,
		Kind:           enums.CatalogKindBook,
		Title:          book.Title,
		Author:         book.Author,
		PriceCents:     book.PriceCents,
		RentPriceCents: book.RentPriceCents,
		LibraryID:      book.LibraryID,
	}
}

// SnapshotFromEbook normalizes a digital title. Ebooks are buy-only, so no
// rental price or library affiliation survives normalization.
func SnapshotFromEbook(ebook *models.Ebook) cart.ItemSnapshot {
	return cart.ItemSnapshot{
		ItemID:     ebook.ID,
		Kind:       enums.CatalogKindEbook,
		Title:      ebook.Title,
		Author:     ebook.Author,
		PriceCents: ebook.PriceCents,
	}
}

// SnapshotFromProduct normalizes a generic wizard-created listing.
func SnapshotFromProduct(product *models.Product) cart.ItemSnapshot {
	return cart.ItemSnapshot{
		ItemID:     product.ID,
		Kind:       enums.CatalogKindProduct,
		Title:      product.Name,
		PriceCents: product.PriceCents,
	}
}
