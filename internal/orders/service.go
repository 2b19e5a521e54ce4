package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/internal/events"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order-level operations.
type Service interface {
	CreateFromCheckout(ctx context.Context, buyerID uuid.UUID, lines []cart.PurchaseLine) (*models.Order, error)
	GetOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*models.Order, error)
	ListBuyerOrders(ctx context.Context, buyerID uuid.UUID, params pagination.Params) (*BuyerOrderPage, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) error
}

type service struct {
	repo      Repository
	tx        txRunner
	publisher events.Publisher
	logg      *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, publisher events.Publisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &service{repo: repo, tx: tx, publisher: publisher, logg: logg}, nil
}

// CreateFromCheckout turns a purchase-cart snapshot into one combined order
// with one line item per (item, transaction type) pair. The order and its
// lines are written in a single transaction.
func (s *service) CreateFromCheckout(ctx context.Context, buyerID uuid.UUID, lines []cart.PurchaseLine) (*models.Order, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity missing")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "no lines to order")
	}

	order := &models.Order{
		ID:      uuid.New(),
		BuyerID: buyerID,
		Status:  enums.OrderStatusPending,
	}
	items := make([]models.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		if line.ItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order line missing item id")
		}
		if !line.TransactionType.AllowedIn(enums.CartKindPurchase) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("transaction type %q cannot be ordered", line.TransactionType))
		}
		order.TotalCents += line.UnitPriceCents
		items = append(items, models.OrderLineItem{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ItemID:          line.ItemID,
			CatalogKind:     line.CatalogKind,
			Title:           line.Title,
			TransactionType: line.TransactionType,
			UnitPriceCents:  line.UnitPriceCents,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}
		return repo.CreateLineItems(ctx, items)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}
	order.LineItems = items

	s.publisher.PublishOrderCreated(ctx, events.OrderCreated{
		OrderID:    order.ID,
		BuyerID:    buyerID,
		TotalCents: order.TotalCents,
		LineCount:  len(items),
		CreatedAt:  time.Now().UTC(),
	})
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, buyerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if buyerID != uuid.Nil && order.BuyerID != buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another buyer")
	}
	return order, nil
}

func (s *service) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID, params pagination.Params) (*BuyerOrderPage, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity missing")
	}
	orders, next, err := s.repo.ListByBuyer(ctx, buyerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	page := &BuyerOrderPage{Orders: orders}
	if next != nil {
		page.NextCursor = pagination.EncodeCursor(*next)
	}
	return page, nil
}

// UpdateStatus moves the order along its lifecycle. Disallowed transitions
// (shipping a pending order, cancelling a delivered one) are state
// conflicts, not validation failures.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) error {
	if !next.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", next))
	}

	var from enums.OrderStatus
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}
		if !order.Status.CanTransitionTo(next) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, next)).
				WithDetails(map[string]string{"from": order.Status.String(), "to": next.String()})
		}
		from = order.Status
		return repo.UpdateStatus(ctx, orderID, next)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}

	s.publisher.PublishOrderStatusChanged(ctx, events.OrderStatusChanged{
		OrderID:   orderID,
		From:      from,
		To:        next,
		ChangedAt: time.Now().UTC(),
	})
	return nil
}
