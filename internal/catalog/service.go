package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/internal/wizard"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

// Service exposes catalog reads, listing creation, and the normalization
// step the cart depends on.
type Service interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, input ProductInput) (*models.Product, error)
	CreateBook(ctx context.Context, sellerID uuid.UUID, input BookInput) (*models.Book, error)
	CreateEbook(ctx context.Context, sellerID uuid.UUID, input EbookInput) (*models.Ebook, error)

	Snapshot(ctx context.Context, kind enums.CatalogKind, itemID uuid.UUID) (cart.ItemSnapshot, error)

	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListBooks(ctx context.Context, filters BookFilters) ([]models.Book, error)
	ListEbooks(ctx context.Context) ([]models.Ebook, error)
	ListProductsBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error)
}

// ProductInput is the full wizard form as submitted. Creation is gated on
// every wizard tab being satisfied, the same check the form UI runs.
type ProductInput struct {
	Form wizard.FormValues
	Tags []string
}

// BookInput captures a physical-book listing.
type BookInput struct {
	Title          string
	Author         string
	ISBN           string
	PriceCents     int64
	RentPriceCents *int64
	LibraryID      *uuid.UUID
	Genres         []string
}

// EbookInput captures a digital-title listing.
type EbookInput struct {
	Title      string
	Author     string
	PriceCents int64
	FileURL    string
	SizeBytes  int64
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) CreateProduct(ctx context.Context, sellerID uuid.UUID, input ProductInput) (*models.Product, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}

	validator := wizard.New()
	validator.EvaluateAll(input.Form)
	if err := validator.CheckReady(); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        input.Form.Name,
		Description: input.Form.Description,
		Category:    input.Form.Category,
		Brand:       input.Form.Brand,
		PriceCents:  input.Form.PriceCents,
		Tags:        input.Tags,
		ImageURLs:   input.Form.ImageURLs,
		GroupBuy:    input.Form.GroupBuy,
		Stock:       input.Form.Stock,
		Kind:        enums.CatalogKindProduct,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product listing")
	}
	return created, nil
}

func (s *service) CreateBook(ctx context.Context, sellerID uuid.UUID, input BookInput) (*models.Book, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	if input.Title == "" || input.Author == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and author are required")
	}
	if input.PriceCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.RentPriceCents != nil && *input.RentPriceCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rent price must be positive when set")
	}

	book := &models.Book{
		ID:             uuid.New(),
		SellerID:       sellerID,
		Title:          input.Title,
		Author:         input.Author,
		ISBN:           input.ISBN,
		PriceCents:     input.PriceCents,
		RentPriceCents: input.RentPriceCents,
		LibraryID:      input.LibraryID,
		Genres:         input.Genres,
	}
	created, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating book listing")
	}
	return created, nil
}

func (s *service) CreateEbook(ctx context.Context, sellerID uuid.UUID, input EbookInput) (*models.Ebook, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	if input.Title == "" || input.Author == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and author are required")
	}
	if input.PriceCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	ebook := &models.Ebook{
		ID:         uuid.New(),
		SellerID:   sellerID,
		Title:      input.Title,
		Author:     input.Author,
		PriceCents: input.PriceCents,
		FileURL:    input.FileURL,
		SizeBytes:  input.SizeBytes,
	}
	created, err := s.repo.CreateEbook(ctx, ebook)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating ebook listing")
	}
	return created, nil
}

// Snapshot resolves a catalog row into the immutable value the cart stores.
func (s *service) Snapshot(ctx context.Context, kind enums.CatalogKind, itemID uuid.UUID) (cart.ItemSnapshot, error) {
	if itemID == uuid.Nil {
		return cart.ItemSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	switch kind {
	case enums.CatalogKindBook:
		book, err := s.repo.FindBookByID(ctx, itemID)
		if err != nil {
			return cart.ItemSnapshot{}, notFoundOrInternal(err, "book")
		}
		return SnapshotFromBook(book), nil
	case enums.CatalogKindEbook:
		ebook, err := s.repo.FindEbookByID(ctx, itemID)
		if err != nil {
			return cart.ItemSnapshot{}, notFoundOrInternal(err, "ebook")
		}
		return SnapshotFromEbook(ebook), nil
	case enums.CatalogKindProduct:
		product, err := s.repo.FindProductByID(ctx, itemID)
		if err != nil {
			return cart.ItemSnapshot{}, notFoundOrInternal(err, "product")
		}
		return SnapshotFromProduct(product), nil
	}
	return cart.ItemSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown catalog kind %q", kind))
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "product")
	}
	return product, nil
}

func (s *service) ListBooks(ctx context.Context, filters BookFilters) ([]models.Book, error) {
	books, err := s.repo.ListBooks(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing books")
	}
	return books, nil
}

func (s *service) ListEbooks(ctx context.Context) ([]models.Ebook, error) {
	ebooks, err := s.repo.ListEbooks(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing ebooks")
	}
	return ebooks, nil
}

func (s *service) ListProductsBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	products, err := s.repo.ListProductsBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing seller products")
	}
	return products, nil
}

func notFoundOrInternal(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading "+entity)
}
