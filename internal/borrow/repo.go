package borrow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// Repository defines persistence operations for borrow requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateRequests(ctx context.Context, requests []models.BorrowRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BorrowRequest, error)
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]models.BorrowRequest, error)
	ListByLibrary(ctx context.Context, libraryID uuid.UUID, status *enums.BorrowStatus) ([]models.BorrowRequest, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, status enums.BorrowStatus, decidedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a borrow repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateRequests(ctx context.Context, requests []models.BorrowRequest) error {
	if len(requests) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&requests).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BorrowRequest, error) {
	var request models.BorrowRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]models.BorrowRequest, error) {
	var requests []models.BorrowRequest
	err := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) ListByLibrary(ctx context.Context, libraryID uuid.UUID, status *enums.BorrowStatus) ([]models.BorrowRequest, error) {
	query := r.db.WithContext(ctx).Where("library_id = ?", libraryID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var requests []models.BorrowRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) UpdateDecision(ctx context.Context, id uuid.UUID, status enums.BorrowStatus, decidedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.BorrowRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "decided_at": decidedAt}).Error
}
