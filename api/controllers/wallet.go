package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulpatwa/bookbazaar-backend/api/responses"
	"github.com/rahulpatwa/bookbazaar-backend/api/validators"
	"github.com/rahulpatwa/bookbazaar-backend/internal/wallet"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

type walletMovementRequest struct {
	Amount  string     `json:"amount" validate:"required"`
	Reason  string     `json:"reason" validate:"required,min=3"`
	OrderID *uuid.UUID `json:"order_id"`
}

type walletBalanceResponse struct {
	Balance string `json:"balance"`
}

// WalletBalance returns the caller's current store-credit balance.
func WalletBalance(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := sellerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		balance, err := svc.Balance(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, walletBalanceResponse{Balance: balance.String()})
	}
}

// WalletHistory returns the caller's ledger entries, newest first.
func WalletHistory(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := sellerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.History(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func walletMovement(apply func(r *http.Request, userID uuid.UUID, amount decimal.Decimal, reason string, orderID *uuid.UUID) (any, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := sellerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload walletMovementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amount, err := decimal.NewFromString(payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount"))
			return
		}
		result, err := apply(r, userID, amount, payload.Reason, payload.OrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// WalletCredit adds store credit to the caller's wallet.
func WalletCredit(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return walletMovement(func(r *http.Request, userID uuid.UUID, amount decimal.Decimal, reason string, orderID *uuid.UUID) (any, error) {
		return svc.Credit(r.Context(), userID, amount, reason, orderID)
	}, logg)
}

// WalletDebit spends store credit from the caller's wallet.
func WalletDebit(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return walletMovement(func(r *http.Request, userID uuid.UUID, amount decimal.Decimal, reason string, orderID *uuid.UUID) (any, error) {
		return svc.Debit(r.Context(), userID, amount, reason, orderID)
	}, logg)
}
