// Package checkout adapts the order and borrow services into the checkout
// collaborator the cart store hands off to.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/internal/borrow"
	"github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/internal/orders"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

// Gateway implements cart.Gateway. It never touches cart state; the caller
// clears the cart explicitly once the result comes back.
type Gateway struct {
	orders  orders.Service
	borrows borrow.Service
	logg    *logger.Logger
}

// NewGateway builds the checkout gateway.
func NewGateway(ordersSvc orders.Service, borrowSvc borrow.Service, logg *logger.Logger) (*Gateway, error) {
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if borrowSvc == nil {
		return nil, fmt.Errorf("borrow service required")
	}
	return &Gateway{orders: ordersSvc, borrows: borrowSvc, logg: logg}, nil
}

// PlaceOrder turns the purchase-cart snapshot into one combined order.
func (g *Gateway) PlaceOrder(ctx context.Context, buyerID uuid.UUID, lines []cart.PurchaseLine) (*cart.CheckoutResult, error) {
	order, err := g.orders.CreateFromCheckout(ctx, buyerID, lines)
	if err != nil {
		return nil, err
	}
	if g.logg != nil {
		lctx := g.logg.WithUserID(ctx, buyerID.String())
		g.logg.Info(lctx, fmt.Sprintf("order %s created from checkout", order.ID))
	}
	return &cart.CheckoutResult{OrderID: order.ID}, nil
}

// RequestBorrows expands the borrow-cart snapshot into one request per line.
func (g *Gateway) RequestBorrows(ctx context.Context, borrowerID uuid.UUID, lines []cart.BorrowLine) (*cart.CheckoutResult, error) {
	requests, err := g.borrows.CreateBulk(ctx, borrowerID, lines)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ID)
	}
	if g.logg != nil {
		lctx := g.logg.WithUserID(ctx, borrowerID.String())
		g.logg.Info(lctx, fmt.Sprintf("%d borrow requests created from checkout", len(ids)))
	}
	return &cart.CheckoutResult{BorrowRequestIDs: ids}, nil
}
