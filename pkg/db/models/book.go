package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Book is a physical title. RentPriceCents is the seller's advertised
// rental rate and is informational only; cart totals derive the rental
// charge from PriceCents. LibraryID marks library affiliation, which the
// cart requires before a borrow line is accepted.
type Book struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID       uuid.UUID      `gorm:"column:seller_id;type:uuid;not null;index"`
	Title          string         `gorm:"column:title;not null"`
	Author         string         `gorm:"column:author;not null"`
	ISBN           string         `gorm:"column:isbn"`
	PriceCents     int64          `gorm:"column:price_cents;not null"`
	RentPriceCents *int64         `gorm:"column:rent_price_cents"`
	LibraryID      *uuid.UUID     `gorm:"column:library_id;type:uuid;index"`
	Genres         pq.StringArray `gorm:"column:genres;type:text[]"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// Ebook is a digital title. Ebooks are buy-only and never library-affiliated.
type Ebook struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID   uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index"`
	Title      string    `gorm:"column:title;not null"`
	Author     string    `gorm:"column:author;not null"`
	PriceCents int64     `gorm:"column:price_cents;not null"`
	FileURL    string    `gorm:"column:file_url"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
