package borrow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

func setupBorrowTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS borrow_requests (
  id TEXT PRIMARY KEY,
  borrower_id TEXT NOT NULL,
  book_id TEXT NOT NULL,
  library_id TEXT NOT NULL,
  title TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'requested',
  decided_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestRequest(borrowerID, libraryID uuid.UUID) models.BorrowRequest {
	return models.BorrowRequest{
		ID:         uuid.New(),
		BorrowerID: borrowerID,
		BookID:     uuid.New(),
		LibraryID:  libraryID,
		Title:      "Sourdough Culture",
		Status:     enums.BorrowStatusRequested,
	}
}

func TestBorrowRepoCreateAndFind(t *testing.T) {
	db := setupBorrowTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	request := newTestRequest(uuid.New(), uuid.New())
	require.NoError(t, repo.CreateRequests(ctx, []models.BorrowRequest{request}))

	found, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.BookID, found.BookID)
	assert.Equal(t, enums.BorrowStatusRequested, found.Status)
	assert.Nil(t, found.DecidedAt)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBorrowRepoListByBorrowerAndLibrary(t *testing.T) {
	db := setupBorrowTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	borrowerID := uuid.New()
	libraryID := uuid.New()
	mine := newTestRequest(borrowerID, libraryID)
	other := newTestRequest(uuid.New(), libraryID)
	elsewhere := newTestRequest(borrowerID, uuid.New())
	require.NoError(t, repo.CreateRequests(ctx, []models.BorrowRequest{mine, other, elsewhere}))

	byBorrower, err := repo.ListByBorrower(ctx, borrowerID)
	require.NoError(t, err)
	require.Len(t, byBorrower, 2)

	byLibrary, err := repo.ListByLibrary(ctx, libraryID, nil)
	require.NoError(t, err)
	require.Len(t, byLibrary, 2)

	approved := enums.BorrowStatusApproved
	filtered, err := repo.ListByLibrary(ctx, libraryID, &approved)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestBorrowRepoUpdateDecision(t *testing.T) {
	db := setupBorrowTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	request := newTestRequest(uuid.New(), uuid.New())
	require.NoError(t, repo.CreateRequests(ctx, []models.BorrowRequest{request}))

	decidedAt := time.Now().UTC()
	require.NoError(t, repo.UpdateDecision(ctx, request.ID, enums.BorrowStatusApproved, decidedAt))

	found, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.BorrowStatusApproved, found.Status)
	require.NotNil(t, found.DecidedAt)
}
