package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
)

// Repository defines persistence operations for the three catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateBook(ctx context.Context, book *models.Book) (*models.Book, error)
	CreateEbook(ctx context.Context, ebook *models.Ebook) (*models.Ebook, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)

	FindBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	FindEbookByID(ctx context.Context, id uuid.UUID) (*models.Ebook, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)

	ListBooks(ctx context.Context, filters BookFilters) ([]models.Book, error)
	ListEbooks(ctx context.Context) ([]models.Ebook, error)
	ListProductsBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error)

	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// BookFilters narrows a book listing.
type BookFilters struct {
	LibraryID *uuid.UUID
	Genre     string
	Rentable  bool
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (r *repository) CreateEbook(ctx context.Context, ebook *models.Ebook) (*models.Ebook, error) {
	if err := r.db.WithContext(ctx).Create(ebook).Error; err != nil {
		return nil, err
	}
	return ebook, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *repository) FindEbookByID(ctx context.Context, id uuid.UUID) (*models.Ebook, error) {
	var ebook models.Ebook
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ebook).Error
	if err != nil {
		return nil, err
	}
	return &ebook, nil
}

func (r *repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListBooks(ctx context.Context, filters BookFilters) ([]models.Book, error) {
	query := r.db.WithContext(ctx).Model(&models.Book{})
	if filters.LibraryID != nil {
		query = query.Where("library_id = ?", *filters.LibraryID)
	}
	if filters.Genre != "" {
		query = query.Where("? = ANY(genres)", filters.Genre)
	}
	if filters.Rentable {
		query = query.Where("rent_price_cents IS NOT NULL")
	}

	var books []models.Book
	if err := query.Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) ListEbooks(ctx context.Context) ([]models.Ebook, error) {
	var ebooks []models.Ebook
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ebooks).Error
	if err != nil {
		return nil, err
	}
	return ebooks, nil
}

func (r *repository) ListProductsBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}
