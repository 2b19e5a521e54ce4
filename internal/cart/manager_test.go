package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/config"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/kv"
)

func testKeyFn(kind enums.CartKind, userID uuid.UUID) string {
	return fmt.Sprintf("bb:cart:%s:%s", kind, userID)
}

func TestManagerCachesPerUserStores(t *testing.T) {
	mgr, err := NewManager(ManagerParams{
		Slot:    kv.NewMemory(),
		KeyFn:   testKeyFn,
		Gateway: &stubGateway{},
		Rental:  config.RentalConfig{FractionBps: 4000},
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	ctx := context.Background()

	userID := uuid.New()
	first, err := mgr.ForUser(ctx, userID)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	second, err := mgr.ForUser(ctx, userID)
	if err != nil {
		t.Fatalf("ForUser again: %v", err)
	}
	if first != second {
		t.Fatal("same user should get the same store instance")
	}

	other, err := mgr.ForUser(ctx, uuid.New())
	if err != nil {
		t.Fatalf("ForUser other: %v", err)
	}
	if other == first {
		t.Fatal("different users must not share a store")
	}

	if _, err := mgr.ForUser(ctx, uuid.Nil); err == nil {
		t.Fatal("nil user id should be rejected")
	}
}

func TestManagerStoresAreKeyedPerUser(t *testing.T) {
	slot := kv.NewMemory()
	mgr, err := NewManager(ManagerParams{
		Slot:    slot,
		KeyFn:   testKeyFn,
		Gateway: &stubGateway{},
		Rental:  config.RentalConfig{FractionBps: 4000},
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	aliceStore, _ := mgr.ForUser(ctx, alice)
	bobStore, _ := mgr.ForUser(ctx, bob)

	if _, err := aliceStore.Add(ctx, bookSnapshot(1000), enums.TransactionBuy, enums.CartKindPurchase); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := len(bobStore.Items(enums.CartKindPurchase)); got != 0 {
		t.Fatalf("bob's cart should be empty, got %d items", got)
	}
	if _, err := slot.Get(ctx, testKeyFn(enums.CartKindPurchase, alice)); err != nil {
		t.Fatalf("alice's slot should be written: %v", err)
	}
}
