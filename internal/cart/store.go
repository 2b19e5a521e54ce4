package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/config"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/kv"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/metrics"
)

// Store owns the two durable cart collections of one user. Every mutation
// updates the in-memory collection first and then writes the full snapshot
// back to the durable slot; the in-memory state stays authoritative for the
// session even when the write fails.
type Store struct {
	userID  uuid.UUID
	slot    kv.Slot
	keys    map[enums.CartKind]string
	gateway Gateway
	rental  config.RentalConfig
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	now     func() time.Time

	mu    sync.Mutex
	carts map[enums.CartKind][]LineItem
}

// StoreParams groups the dependencies of a cart store.
type StoreParams struct {
	UserID      uuid.UUID
	Slot        kv.Slot
	PurchaseKey string
	BorrowKey   string
	Gateway     Gateway
	Rental      config.RentalConfig
	Logger      *logger.Logger
	Metrics     *metrics.CartMetrics
	Now         func() time.Time
}

// NewStore hydrates both collections from their durable slots. A missing or
// malformed snapshot yields an empty collection, never an error.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.UserID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	if params.Slot == nil {
		return nil, fmt.Errorf("durable slot is required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("checkout gateway is required")
	}
	if params.PurchaseKey == "" || params.BorrowKey == "" {
		return nil, fmt.Errorf("slot keys are required")
	}
	if params.Rental.FractionBps == 0 {
		params.Rental.FractionBps = 4000
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	s := &Store{
		userID:  params.UserID,
		slot:    params.Slot,
		keys: map[enums.CartKind]string{
			enums.CartKindPurchase: params.PurchaseKey,
			enums.CartKindBorrow:   params.BorrowKey,
		},
		gateway: params.Gateway,
		rental:  params.Rental,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     params.Now,
		carts:   map[enums.CartKind][]LineItem{},
	}

	for kind, key := range s.keys {
		s.carts[kind] = s.hydrate(ctx, kind, key)
	}
	return s, nil
}

func (s *Store) hydrate(ctx context.Context, kind enums.CartKind, key string) []LineItem {
	raw, err := s.slot.Get(ctx, key)
	if err != nil {
		if err != kv.ErrNotFound && s.logg != nil {
			ctx = s.logg.WithCartKind(ctx, kind.String())
			s.logg.Warn(ctx, "cart slot unreadable, starting empty")
		}
		return []LineItem{}
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		if s.logg != nil {
			ctx = s.logg.WithCartKind(ctx, kind.String())
			s.logg.Warn(ctx, "cart snapshot malformed, starting empty")
		}
		return []LineItem{}
	}
	return items
}

// Add appends a line item for (item, transaction type) unless the composite
// id already exists, in which case the cart is untouched and the caller
// surfaces a duplicate notice.
func (s *Store) Add(ctx context.Context, item ItemSnapshot, tx enums.TransactionType, kind enums.CartKind) (*LineItem, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart kind %q", kind))
	}
	if !tx.AllowedIn(kind) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("transaction type %q not allowed in %s cart", tx, kind))
	}
	if kind == enums.CartKindBorrow && item.LibraryID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "borrow items require a lending library")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := LineIDFor(kind, item.ItemID, tx)
	for _, existing := range s.carts[kind] {
		if existing.ID == id {
			s.metrics.IncDuplicate(kind.String())
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateItem, "item already in cart").
				WithDetails(map[string]string{"line_item_id": id})
		}
	}

	line := LineItem{
		ID:              id,
		Item:            item,
		TransactionType: tx,
		AddedAt:         s.now(),
	}
	if kind == enums.CartKindBorrow {
		line.LibraryID = item.LibraryID
	}

	s.carts[kind] = append(s.carts[kind], line)
	s.metrics.IncMutation(kind.String(), "add")

	if err := s.persist(ctx, kind); err != nil {
		return &line, err
	}
	return &line, nil
}

// Remove drops the line with the given composite id. Removing an absent id
// is a no-op; the remaining order is preserved either way.
func (s *Store) Remove(ctx context.Context, lineItemID string, kind enums.CartKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart kind %q", kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[kind]
	filtered := items[:0:0]
	for _, item := range items {
		if item.ID != lineItemID {
			filtered = append(filtered, item)
		}
	}
	s.carts[kind] = filtered
	s.metrics.IncMutation(kind.String(), "remove")

	return s.persist(ctx, kind)
}

// Clear empties the collection.
func (s *Store) Clear(ctx context.Context, kind enums.CartKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart kind %q", kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[kind] = []LineItem{}
	s.metrics.IncMutation(kind.String(), "clear")

	return s.persist(ctx, kind)
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items(kind enums.CartKind) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[kind]
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// TotalValue computes the cart's value without storing it. Borrow carts are
// always free.
func (s *Store) TotalValue(kind enums.CartKind) int64 {
	if kind == enums.CartKindBorrow {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, line := range s.carts[kind] {
		total += lineValueCents(line, s.rental.FractionBps)
	}
	return total
}

// Checkout hands a snapshot of the collection to the checkout collaborator.
// An empty cart is a reported precondition failure and no call is made.
// The cart is never cleared here; callers clear explicitly once the
// collaborator confirms.
func (s *Store) Checkout(ctx context.Context, kind enums.CartKind) (*CheckoutResult, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cart kind %q", kind))
	}

	s.mu.Lock()
	items := make([]LineItem, len(s.carts[kind]))
	copy(items, s.carts[kind])
	s.mu.Unlock()

	if len(items) == 0 {
		s.metrics.IncCheckout(kind.String(), "empty")
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, fmt.Sprintf("%s cart is empty", kind))
	}

	start := s.now()
	var result *CheckoutResult
	var err error

	switch kind {
	case enums.CartKindPurchase:
		lines := make([]PurchaseLine, 0, len(items))
		for _, item := range items {
			lines = append(lines, PurchaseLine{
				ItemID:          item.Item.ItemID,
				CatalogKind:     item.Item.Kind,
				Title:           item.Item.Title,
				TransactionType: item.TransactionType,
				UnitPriceCents:  lineValueCents(item, s.rental.FractionBps),
			})
		}
		result, err = s.gateway.PlaceOrder(ctx, s.userID, lines)
	case enums.CartKindBorrow:
		lines := make([]BorrowLine, 0, len(items))
		for _, item := range items {
			line := BorrowLine{BookID: item.Item.ItemID, Title: item.Item.Title}
			if item.LibraryID != nil {
				line.LibraryID = *item.LibraryID
			}
			lines = append(lines, line)
		}
		result, err = s.gateway.RequestBorrows(ctx, s.userID, lines)
	}

	s.metrics.ObserveCheckoutDuration(kind.String(), s.now().Sub(start))

	if err != nil {
		s.metrics.IncCheckout(kind.String(), "failed")
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeCheckoutDown, err, "checkout handoff failed")
	}

	s.metrics.IncCheckout(kind.String(), "ok")
	return result, nil
}

// persist writes the full collection back to the durable slot. A failed
// write is surfaced but the in-memory collection is left as mutated.
func (s *Store) persist(ctx context.Context, kind enums.CartKind) error {
	raw, err := json.Marshal(s.carts[kind])
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "serializing cart snapshot")
	}
	if err := s.slot.Set(ctx, s.keys[kind], raw); err != nil {
		if s.logg != nil {
			lctx := s.logg.WithCartKind(ctx, kind.String())
			s.logg.Error(lctx, "cart snapshot write failed", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "writing cart snapshot")
	}
	return nil
}
