package borrow

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
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines borrow-request operations.
type Service interface {
	CreateBulk(ctx context.Context, borrowerID uuid.UUID, lines []cart.BorrowLine) ([]models.BorrowRequest, error)
	Decide(ctx context.Context, libraryID, requestID uuid.UUID, approve bool) (*models.BorrowRequest, error)
	ListBorrowerRequests(ctx context.Context, borrowerID uuid.UUID) ([]models.BorrowRequest, error)
	ListLibraryQueue(ctx context.Context, libraryID uuid.UUID, status *enums.BorrowStatus) ([]models.BorrowRequest, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	publisher events.Publisher
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a borrow service with the required dependencies.
func NewService(repo Repository, tx txRunner, publisher events.Publisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("borrow repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &service{repo: repo, tx: tx, publisher: publisher, logg: logg, now: time.Now}, nil
}

// CreateBulk expands a borrow-cart snapshot into one independently
// approvable request per line, written in a single transaction.
func (s *service) CreateBulk(ctx context.Context, borrowerID uuid.UUID, lines []cart.BorrowLine) ([]models.BorrowRequest, error) {
	if borrowerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "borrower identity missing")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "no borrow lines to request")
	}

	requests := make([]models.BorrowRequest, 0, len(lines))
	for _, line := range lines {
		if line.BookID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "borrow line missing book id")
		}
		if line.LibraryID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "borrow line missing library id")
		}
		requests = append(requests, models.BorrowRequest{
			ID:         uuid.New(),
			BorrowerID: borrowerID,
			BookID:     line.BookID,
			LibraryID:  line.LibraryID,
			Title:      line.Title,
			Status:     enums.BorrowStatusRequested,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).CreateRequests(ctx, requests)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating borrow requests")
	}

	requestedAt := s.now().UTC()
	for _, request := range requests {
		s.publisher.PublishBorrowRequested(ctx, events.BorrowRequested{
			RequestID:   request.ID,
			BookID:      request.BookID,
			BorrowerID:  borrowerID,
			LibraryID:   request.LibraryID,
			RequestedAt: requestedAt,
		})
	}
	return requests, nil
}

// Decide records a library's approval or rejection. Decisions are terminal;
// a second decision on the same request is a state conflict.
func (s *service) Decide(ctx context.Context, libraryID, requestID uuid.UUID, approve bool) (*models.BorrowRequest, error) {
	if libraryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "library identity missing")
	}

	status := enums.BorrowStatusRejected
	if approve {
		status = enums.BorrowStatusApproved
	}
	decidedAt := s.now().UTC()

	var decided *models.BorrowRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request, err := repo.FindByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "borrow request not found")
			}
			return err
		}
		if request.LibraryID != libraryID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "request belongs to another library")
		}
		if request.Status.Terminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("request already %s", request.Status))
		}
		if err := repo.UpdateDecision(ctx, requestID, status, decidedAt); err != nil {
			return err
		}
		request.Status = status
		request.DecidedAt = &decidedAt
		decided = request
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deciding borrow request")
	}

	s.publisher.PublishBorrowDecided(ctx, events.BorrowDecided{
		RequestID: decided.ID,
		BookID:    decided.BookID,
		LibraryID: decided.LibraryID,
		Status:    decided.Status,
		DecidedAt: decidedAt,
	})
	return decided, nil
}

func (s *service) ListBorrowerRequests(ctx context.Context, borrowerID uuid.UUID) ([]models.BorrowRequest, error) {
	if borrowerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "borrower identity missing")
	}
	requests, err := s.repo.ListByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing borrow requests")
	}
	return requests, nil
}

func (s *service) ListLibraryQueue(ctx context.Context, libraryID uuid.UUID, status *enums.BorrowStatus) ([]models.BorrowRequest, error) {
	if libraryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "library identity missing")
	}
	requests, err := s.repo.ListByLibrary(ctx, libraryID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing library queue")
	}
	return requests, nil
}
