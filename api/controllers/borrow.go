package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/api/middleware"
	"github.com/rahulpatwa/bookbazaar-backend/api/responses"
	"github.com/rahulpatwa/bookbazaar-backend/api/validators"
	"github.com/rahulpatwa/bookbazaar-backend/internal/borrow"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

type borrowDecisionRequest struct {
	Approve bool `json:"approve"`
}

func libraryFromRequest(r *http.Request) (uuid.UUID, error) {
	libraryID := middleware.LibraryIDFromContext(r.Context())
	if libraryID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "caller is not a library member")
	}
	return libraryID, nil
}

// BorrowList returns the caller's own borrow requests.
func BorrowList(svc borrow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		borrowerID, err := sellerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListBorrowerRequests(r.Context(), borrowerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// BorrowQueue returns the caller's library requests, optionally filtered by status.
func BorrowQueue(svc borrow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		libraryID, err := libraryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var status *enums.BorrowStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParseBorrowStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid borrow status"))
				return
			}
			status = &parsed
		}
		list, err := svc.ListLibraryQueue(r.Context(), libraryID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// BorrowDecide approves or rejects a pending borrow request.
func BorrowDecide(svc borrow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		libraryID, err := libraryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		requestID, err := uuid.Parse(chi.URLParam(r, "requestId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request id"))
			return
		}
		var payload borrowDecisionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		request, err := svc.Decide(r.Context(), libraryID, requestID, payload.Approve)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}
