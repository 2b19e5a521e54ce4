package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// Order is the single combined order produced by a purchase-cart checkout.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerID    uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null;index"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	TotalCents int64             `gorm:"column:total_cents;not null"`
	LineItems  []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem carries one (item, transaction type) pair from the cart,
// with the unit price captured at checkout time.
type OrderLineItem struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	ItemID          uuid.UUID             `gorm:"column:item_id;type:uuid;not null"`
	CatalogKind     enums.CatalogKind     `gorm:"column:catalog_kind;not null"`
	Title           string                `gorm:"column:title;not null"`
	TransactionType enums.TransactionType `gorm:"column:transaction_type;not null"`
	UnitPriceCents  int64                 `gorm:"column:unit_price_cents;not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
