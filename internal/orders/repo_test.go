package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  buyer_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  total_cents INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  catalog_kind TEXT NOT NULL,
  title TEXT NOT NULL,
  transaction_type TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func createTestOrder(t *testing.T, repo Repository, buyerID uuid.UUID, total int64) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:         uuid.New(),
		BuyerID:    buyerID,
		Status:     enums.OrderStatusPending,
		TotalCents: total,
	}
	_, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	return order
}

func TestOrdersRepoCreateAndFindWithLines(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, repo, uuid.New(), 49900)
	items := []models.OrderLineItem{
		{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ItemID:          uuid.New(),
			CatalogKind:     enums.CatalogKindBook,
			Title:           "A",
			TransactionType: enums.TransactionBuy,
			UnitPriceCents:  29900,
		},
		{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ItemID:          uuid.New(),
			CatalogKind:     enums.CatalogKindBook,
			Title:           "B",
			TransactionType: enums.TransactionRent,
			UnitPriceCents:  20000,
		},
	}
	require.NoError(t, repo.CreateLineItems(ctx, items))

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(49900), found.TotalCents)
	require.Len(t, found.LineItems, 2)

	_, err = repo.FindOrderByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrdersRepoListByBuyerAndUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	order := createTestOrder(t, repo, buyerID, 1000)
	createTestOrder(t, repo, uuid.New(), 2000)

	list, _, err := repo.ListByBuyer(ctx, buyerID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPaid))
	updated, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, updated.Status)
}

func TestOrdersRepoListByBuyerCursorPaging(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	for i := 0; i < 3; i++ {
		createTestOrder(t, repo, buyerID, int64(1000*(i+1)))
	}

	first, next, err := repo.ListByBuyer(ctx, buyerID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, next)

	rest, last, err := repo.ListByBuyer(ctx, buyerID, pagination.Params{
		Limit:  2,
		Cursor: pagination.EncodeCursor(*next),
	})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Nil(t, last)

	seen := map[uuid.UUID]bool{}
	for _, order := range append(first, rest...) {
		seen[order.ID] = true
	}
	assert.Len(t, seen, 3)
}
