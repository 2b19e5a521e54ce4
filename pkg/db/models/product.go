package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// Product is a generic marketplace listing created through the wizard.
type Product struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID      uuid.UUID           `gorm:"column:seller_id;type:uuid;not null;index"`
	Name          string              `gorm:"column:name;not null"`
	Description   string              `gorm:"column:description;not null"`
	Category      string              `gorm:"column:category;not null"`
	Brand         string              `gorm:"column:brand;not null"`
	PriceCents    int64               `gorm:"column:price_cents;not null"`
	Tags          pq.StringArray      `gorm:"column:tags;type:text[]"`
	ImageURLs     pq.StringArray      `gorm:"column:image_urls;type:text[]"`
	GroupBuy      enums.TriState      `gorm:"column:group_buy;not null;default:'unset'"`
	Stock         int                 `gorm:"column:stock;not null;default:0"`
	Kind          enums.CatalogKind   `gorm:"column:kind;not null;default:'product'"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
