package borrow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/internal/events"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubBorrowRepo struct {
	requests map[uuid.UUID]*models.BorrowRequest
	created  []models.BorrowRequest
}

func newStubBorrowRepo() *stubBorrowRepo {
	return &stubBorrowRepo{requests: map[uuid.UUID]*models.BorrowRequest{}}
}

func (s *stubBorrowRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubBorrowRepo) CreateRequests(_ context.Context, requests []models.BorrowRequest) error {
	s.created = append(s.created, requests...)
	for i := range requests {
		request := requests[i]
		s.requests[request.ID] = &request
	}
	return nil
}

func (s *stubBorrowRepo) FindByID(_ context.Context, id uuid.UUID) (*models.BorrowRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (s *stubBorrowRepo) ListByBorrower(_ context.Context, borrowerID uuid.UUID) ([]models.BorrowRequest, error) {
	var out []models.BorrowRequest
	for _, request := range s.requests {
		if request.BorrowerID == borrowerID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (s *stubBorrowRepo) ListByLibrary(_ context.Context, libraryID uuid.UUID, status *enums.BorrowStatus) ([]models.BorrowRequest, error) {
	var out []models.BorrowRequest
	for _, request := range s.requests {
		if request.LibraryID != libraryID {
			continue
		}
		if status != nil && request.Status != *status {
			continue
		}
		out = append(out, *request)
	}
	return out, nil
}

func (s *stubBorrowRepo) UpdateDecision(_ context.Context, id uuid.UUID, status enums.BorrowStatus, decidedAt time.Time) error {
	if request, ok := s.requests[id]; ok {
		request.Status = status
		request.DecidedAt = &decidedAt
	}
	return nil
}

type recordingPublisher struct {
	events.Noop

	requested []events.BorrowRequested
	decided   []events.BorrowDecided
}

func (r *recordingPublisher) PublishBorrowRequested(_ context.Context, event events.BorrowRequested) {
	r.requested = append(r.requested, event)
}

func (r *recordingPublisher) PublishBorrowDecided(_ context.Context, event events.BorrowDecided) {
	r.decided = append(r.decided, event)
}

func TestCreateBulkExpandsOneRequestPerLine(t *testing.T) {
	repo := newStubBorrowRepo()
	pub := &recordingPublisher{}
	svc, err := NewService(repo, stubTxRunner{}, pub, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	borrowerID := uuid.New()
	libA, libB := uuid.New(), uuid.New()
	lines := []cart.BorrowLine{
		{BookID: uuid.New(), LibraryID: libA, Title: "A"},
		{BookID: uuid.New(), LibraryID: libB, Title: "B"},
	}

	requests, err := svc.CreateBulk(context.Background(), borrowerID, lines)
	if err != nil {
		t.Fatalf("CreateBulk: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	for i, request := range requests {
		if request.Status != enums.BorrowStatusRequested {
			t.Fatalf("new requests start as requested, got %s", request.Status)
		}
		if request.LibraryID != lines[i].LibraryID {
			t.Fatalf("request %d lost its library", i)
		}
	}
	if len(pub.requested) != 2 {
		t.Fatalf("expected one event per request, got %d", len(pub.requested))
	}
}

func TestCreateBulkValidatesLines(t *testing.T) {
	svc, err := NewService(newStubBorrowRepo(), stubTxRunner{}, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.CreateBulk(ctx, uuid.New(), nil); !pkgerrors.HasCode(err, pkgerrors.CodeEmptyCart) {
		t.Fatalf("empty line set should be rejected, got %v", err)
	}
	missingLib := []cart.BorrowLine{{BookID: uuid.New()}}
	if _, err := svc.CreateBulk(ctx, uuid.New(), missingLib); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("line without library should be rejected, got %v", err)
	}
}

func TestDecideIsTerminalAndScopedToLibrary(t *testing.T) {
	repo := newStubBorrowRepo()
	pub := &recordingPublisher{}
	svc, err := NewService(repo, stubTxRunner{}, pub, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	libraryID := uuid.New()
	request := &models.BorrowRequest{
		ID:         uuid.New(),
		BorrowerID: uuid.New(),
		BookID:     uuid.New(),
		LibraryID:  libraryID,
		Status:     enums.BorrowStatusRequested,
	}
	repo.requests[request.ID] = request

	// Another library cannot decide this request.
	if _, err := svc.Decide(ctx, uuid.New(), request.ID, true); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("foreign library decision should be forbidden, got %v", err)
	}

	decided, err := svc.Decide(ctx, libraryID, request.ID, true)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != enums.BorrowStatusApproved || decided.DecidedAt == nil {
		t.Fatalf("unexpected decision state %+v", decided)
	}

	// Approved is terminal; flipping to rejected must fail.
	if _, err := svc.Decide(ctx, libraryID, request.ID, false); !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("second decision should conflict, got %v", err)
	}
	if len(pub.decided) != 1 {
		t.Fatalf("expected exactly one decided event, got %d", len(pub.decided))
	}

	if _, err := svc.Decide(ctx, libraryID, uuid.New(), true); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("missing request should be not-found, got %v", err)
	}
}

func TestListLibraryQueueFiltersByStatus(t *testing.T) {
	repo := newStubBorrowRepo()
	svc, err := NewService(repo, stubTxRunner{}, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	libraryID := uuid.New()
	pending := &models.BorrowRequest{ID: uuid.New(), LibraryID: libraryID, Status: enums.BorrowStatusRequested}
	approved := &models.BorrowRequest{ID: uuid.New(), LibraryID: libraryID, Status: enums.BorrowStatusApproved}
	repo.requests[pending.ID] = pending
	repo.requests[approved.ID] = approved

	status := enums.BorrowStatusRequested
	queue, err := svc.ListLibraryQueue(ctx, libraryID, &status)
	if err != nil {
		t.Fatalf("ListLibraryQueue: %v", err)
	}
	if len(queue) != 1 || queue[0].ID != pending.ID {
		t.Fatalf("expected only the pending request, got %+v", queue)
	}
}
