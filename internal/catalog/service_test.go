package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/internal/wizard"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
)

type stubCatalogRepo struct {
	Repository

	books    map[uuid.UUID]*models.Book
	ebooks   map[uuid.UUID]*models.Ebook
	products map[uuid.UUID]*models.Product

	createdProduct *models.Product
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		books:    map[uuid.UUID]*models.Book{},
		ebooks:   map[uuid.UUID]*models.Ebook{},
		products: map[uuid.UUID]*models.Product{},
	}
}

func (s *stubCatalogRepo) CreateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	s.createdProduct = product
	s.products[product.ID] = product
	return product, nil
}

func (s *stubCatalogRepo) CreateBook(_ context.Context, book *models.Book) (*models.Book, error) {
	s.books[book.ID] = book
	return book, nil
}

func (s *stubCatalogRepo) CreateEbook(_ context.Context, ebook *models.Ebook) (*models.Ebook, error) {
	s.ebooks[ebook.ID] = ebook
	return ebook, nil
}

func (s *stubCatalogRepo) FindBookByID(_ context.Context, id uuid.UUID) (*models.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func (s *stubCatalogRepo) FindEbookByID(_ context.Context, id uuid.UUID) (*models.Ebook, error) {
	ebook, ok := s.ebooks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ebook, nil
}

func (s *stubCatalogRepo) FindProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func completeProductForm() wizard.FormValues {
	return wizard.FormValues{
		Name:        "Leather Bookmark",
		Description: "Hand-stitched bookmark.",
		Category:    "accessories",
		PriceCents:  4900,
		Brand:       "Foglio",
		GroupBuy:    enums.TriStateOff,
		Stock:       30,
	}
}

func TestCreateProductGatedOnWizardCompleteness(t *testing.T) {
	repo := newStubCatalogRepo()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()
	sellerID := uuid.New()

	form := completeProductForm()
	form.GroupBuy = enums.TriStateUnset
	_, err = svc.CreateProduct(ctx, sellerID, ProductInput{Form: form})
	if !pkgerrors.HasCode(err, pkgerrors.CodeIncompleteListing) {
		t.Fatalf("undecided group-buy should block creation, got %v", err)
	}
	if repo.createdProduct != nil {
		t.Fatal("incomplete listing must not reach the repository")
	}

	product, err := svc.CreateProduct(ctx, sellerID, ProductInput{Form: completeProductForm(), Tags: []string{"gift"}})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.ID == uuid.Nil {
		t.Fatal("product should get an id")
	}
	if product.SellerID != sellerID || product.GroupBuy != enums.TriStateOff {
		t.Fatalf("unexpected product persisted: %+v", product)
	}
}

func TestSnapshotNormalizesEachCatalogKind(t *testing.T) {
	repo := newStubCatalogRepo()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	rentPrice := int64(11960)
	libraryID := uuid.New()
	book := &models.Book{
		ID:             uuid.New(),
		Title:          "Piranesi",
		Author:         "Susanna Clarke",
		PriceCents:     29900,
		RentPriceCents: &rentPrice,
		LibraryID:      &libraryID,
	}
	repo.books[book.ID] = book

	snap, err := svc.Snapshot(ctx, enums.CatalogKindBook, book.ID)
	if err != nil {
		t.Fatalf("book snapshot: %v", err)
	}
	if snap.Kind != enums.CatalogKindBook || snap.Title != "Piranesi" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LibraryID == nil || *snap.LibraryID != libraryID {
		t.Fatal("book snapshot should carry the library affiliation")
	}

	ebook := &models.Ebook{ID: uuid.New(), Title: "Digital Fortress", Author: "Dan Brown", PriceCents: 9900}
	repo.ebooks[ebook.ID] = ebook
	snap, err = svc.Snapshot(ctx, enums.CatalogKindEbook, ebook.ID)
	if err != nil {
		t.Fatalf("ebook snapshot: %v", err)
	}
	if snap.RentPriceCents != nil || snap.LibraryID != nil {
		t.Fatal("ebook snapshot must not carry rental or library fields")
	}

	product := &models.Product{ID: uuid.New(), Name: "Book Stand", PriceCents: 89900}
	repo.products[product.ID] = product
	snap, err = svc.Snapshot(ctx, enums.CatalogKindProduct, product.ID)
	if err != nil {
		t.Fatalf("product snapshot: %v", err)
	}
	if snap.Title != "Book Stand" || snap.Kind != enums.CatalogKindProduct {
		t.Fatalf("unexpected product snapshot %+v", snap)
	}
}

func TestSnapshotMapsMissingRowsToNotFound(t *testing.T) {
	svc, err := NewService(newStubCatalogRepo(), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Snapshot(context.Background(), enums.CatalogKindBook, uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCreateBookValidation(t *testing.T) {
	svc, err := NewService(newStubCatalogRepo(), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	_, err = svc.CreateBook(ctx, uuid.New(), BookInput{Title: "No Author", PriceCents: 1000})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("missing author should be rejected, got %v", err)
	}

	bad := int64(0)
	_, err = svc.CreateBook(ctx, uuid.New(), BookInput{Title: "T", Author: "A", PriceCents: 1000, RentPriceCents: &bad})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("zero rent price should be rejected, got %v", err)
	}

	book, err := svc.CreateBook(ctx, uuid.New(), BookInput{Title: "T", Author: "A", PriceCents: 1000})
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	if book.ID == uuid.Nil {
		t.Fatal("book should get an id")
	}
}
