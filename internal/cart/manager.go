package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/config"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/kv"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/metrics"
)

// KeyFunc derives the durable slot key for one user's cart collection.
type KeyFunc func(kind enums.CartKind, userID uuid.UUID) string

// Manager hands out one Store per user, hydrating it from the durable slot
// on first use and caching it for the rest of the process lifetime.
type Manager struct {
	slot    kv.Slot
	keyFn   KeyFunc
	gateway Gateway
	rental  config.RentalConfig
	logg    *logger.Logger
	metrics *metrics.CartMetrics

	mu     sync.Mutex
	stores map[uuid.UUID]*Store
}

// ManagerParams groups the shared dependencies of all cart stores.
type ManagerParams struct {
	Slot    kv.Slot
	KeyFn   KeyFunc
	Gateway Gateway
	Rental  config.RentalConfig
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

// NewManager builds the cart store manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Slot == nil {
		return nil, fmt.Errorf("durable slot is required")
	}
	if params.KeyFn == nil {
		return nil, fmt.Errorf("slot key function is required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("checkout gateway is required")
	}
	return &Manager{
		slot:    params.Slot,
		keyFn:   params.KeyFn,
		gateway: params.Gateway,
		rental:  params.Rental,
		logg:    params.Logger,
		metrics: params.Metrics,
		stores:  map[uuid.UUID]*Store{},
	}, nil
}

// ForUser returns the user's cart store, creating and hydrating it on first
// access.
func (m *Manager) ForUser(ctx context.Context, userID uuid.UUID) (*Store, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[userID]; ok {
		return store, nil
	}

	store, err := NewStore(ctx, StoreParams{
		UserID:      userID,
		Slot:        m.slot,
		PurchaseKey: m.keyFn(enums.CartKindPurchase, userID),
		BorrowKey:   m.keyFn(enums.CartKindBorrow, userID),
		Gateway:     m.gateway,
		Rental:      m.rental,
		Logger:      m.logg,
		Metrics:     m.metrics,
	})
	if err != nil {
		return nil, err
	}
	m.stores[userID] = store
	return store, nil
}
