package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/db/models"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the store-credit wallet. Every balance change appends a
// ledger entry in the same transaction; the balance column is the cached
// running sum.
type Service interface {
	Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, orderID *uuid.UUID) (*models.Wallet, error)
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, orderID *uuid.UUID) (*models.Wallet, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.WalletEntry, error)
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the wallet service.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := s.findOrZero(ctx, s.repo, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if wallet == nil {
		return decimal.Zero, nil
	}
	return wallet.Balance, nil
}

func (s *service) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, orderID *uuid.UUID) (*models.Wallet, error) {
	return s.apply(ctx, userID, amount, reason, orderID)
}

func (s *service) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, orderID *uuid.UUID) (*models.Wallet, error) {
	return s.apply(ctx, userID, amount.Neg(), reason, orderID)
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]models.WalletEntry, error) {
	wallet, err := s.findOrZero(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return []models.WalletEntry{}, nil
	}
	entries, err := s.repo.ListEntries(ctx, wallet.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing wallet entries")
	}
	return entries, nil
}

// apply adds signedAmount to the wallet, creating the wallet lazily on
// first credit. Debits below zero are state conflicts.
func (s *service) apply(ctx context.Context, userID uuid.UUID, signedAmount decimal.Decimal, reason string, orderID *uuid.UUID) (*models.Wallet, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if signedAmount.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be non-zero")
	}
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ledger reason required")
	}

	var result *models.Wallet
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		wallet, err := s.findOrZero(ctx, repo, userID)
		if err != nil {
			return err
		}
		if wallet == nil {
			if signedAmount.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient wallet balance")
			}
			wallet = &models.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.Zero}
			if _, err := repo.CreateWallet(ctx, wallet); err != nil {
				return err
			}
		}

		next := wallet.Balance.Add(signedAmount)
		if next.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient wallet balance").
				WithDetails(map[string]string{"balance": wallet.Balance.String()})
		}

		if err := repo.UpdateBalance(ctx, wallet.ID, next); err != nil {
			return err
		}
		entry := &models.WalletEntry{
			ID:       uuid.New(),
			WalletID: wallet.ID,
			Amount:   signedAmount,
			Reason:   reason,
			OrderID:  orderID,
		}
		if err := repo.AppendEntry(ctx, entry); err != nil {
			return err
		}

		wallet.Balance = next
		result = wallet
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "applying wallet entry")
	}
	return result, nil
}

// findOrZero returns nil without error when the user has no wallet yet.
func (s *service) findOrZero(ctx context.Context, repo Repository, userID uuid.UUID) (*models.Wallet, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	wallet, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wallet")
	}
	return wallet, nil
}
