package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// BorrowRequest is one row of a bulk borrow-cart checkout. Every line item in
// the borrow cart expands to its own request so each lending library can
// approve or reject independently.
type BorrowRequest struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BorrowerID uuid.UUID          `gorm:"column:borrower_id;type:uuid;not null;index"`
	BookID     uuid.UUID          `gorm:"column:book_id;type:uuid;not null"`
	LibraryID  uuid.UUID          `gorm:"column:library_id;type:uuid;not null;index"`
	Title      string             `gorm:"column:title;not null"`
	Status     enums.BorrowStatus `gorm:"column:status;not null;default:'requested'"`
	DecidedAt  *time.Time         `gorm:"column:decided_at"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
