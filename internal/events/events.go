// Package events publishes domain events emitted by checkout flows. Events
// are best-effort notifications for downstream consumers (recommendations,
// seller dashboards); failures are logged and never fail the originating
// operation.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// EventType tags the payload shape carried in a message.
type EventType string

const (
	EventOrderCreated    EventType = "order.created"
	EventOrderStatus     EventType = "order.status_changed"
	EventBorrowRequested EventType = "borrow.requested"
	EventBorrowDecided   EventType = "borrow.decided"
)

// OrderCreated is emitted once per purchase-cart checkout.
type OrderCreated struct {
	OrderID    uuid.UUID `json:"order_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	TotalCents int64     `json:"total_cents"`
	LineCount  int       `json:"line_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderStatusChanged is emitted on every order lifecycle transition.
type OrderStatusChanged struct {
	OrderID   uuid.UUID         `json:"order_id"`
	BuyerID   uuid.UUID         `json:"buyer_id"`
	From      enums.OrderStatus `json:"from"`
	To        enums.OrderStatus `json:"to"`
	ChangedAt time.Time         `json:"changed_at"`
}

// BorrowRequested is emitted once per borrow request created by a bulk
// borrow checkout, so each lending library sees its own notification.
type BorrowRequested struct {
	RequestID   uuid.UUID `json:"request_id"`
	BookID      uuid.UUID `json:"book_id"`
	BorrowerID  uuid.UUID `json:"borrower_id"`
	LibraryID   uuid.UUID `json:"library_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// BorrowDecided is emitted when a library approves or rejects a request.
type BorrowDecided struct {
	RequestID uuid.UUID          `json:"request_id"`
	BookID    uuid.UUID          `json:"book_id"`
	LibraryID uuid.UUID          `json:"library_id"`
	Status    enums.BorrowStatus `json:"status"`
	DecidedAt time.Time          `json:"decided_at"`
}
