package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/api/middleware"
	"github.com/rahulpatwa/bookbazaar-backend/api/responses"
	"github.com/rahulpatwa/bookbazaar-backend/api/validators"
	cartsvc "github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/internal/catalog"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

type addCartItemRequest struct {
	ItemID          uuid.UUID `json:"item_id" validate:"required"`
	CatalogKind     string    `json:"catalog_kind" validate:"required,oneof=book ebook product"`
	TransactionType string    `json:"transaction_type" validate:"required,oneof=buy rent borrow"`
}

type cartResponse struct {
	Kind       enums.CartKind     `json:"kind"`
	Items      []cartsvc.LineItem `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

func cartKindFromRequest(r *http.Request) (enums.CartKind, error) {
	kind, err := enums.ParseCartKind(chi.URLParam(r, "cartKind"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart kind")
	}
	return kind, nil
}

func userStore(r *http.Request, carts *cartsvc.Manager) (*cartsvc.Store, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return carts.ForUser(r.Context(), userID)
}

func writeCart(w http.ResponseWriter, store *cartsvc.Store, kind enums.CartKind) {
	responses.WriteSuccess(w, cartResponse{
		Kind:       kind,
		Items:      store.Items(kind),
		TotalCents: store.TotalValue(kind),
	})
}

// CartGet returns the current collection and its computed value.
func CartGet(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := cartKindFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := userStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, store, kind)
	}
}

// CartAdd resolves the catalog item into a snapshot and appends a line.
// A duplicate line is a 409 carrying the existing composite id.
func CartAdd(carts *cartsvc.Manager, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := cartKindFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		catalogKind, err := enums.ParseCatalogKind(payload.CatalogKind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog kind"))
			return
		}
		txType, err := enums.ParseTransactionType(payload.TransactionType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type"))
			return
		}

		store, err := userStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := catalogSvc.Snapshot(r.Context(), catalogKind, payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := store.Add(r.Context(), snapshot, txType, kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, line)
	}
}

// CartRemove drops a line by composite id. Unknown ids are a no-op.
func CartRemove(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := cartKindFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineItemID := chi.URLParam(r, "lineItemId")
		if lineItemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line item id required"))
			return
		}

		store, err := userStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.Remove(r.Context(), lineItemID, kind); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, store, kind)
	}
}

// CartClear empties the collection.
func CartClear(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := cartKindFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := userStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.Clear(r.Context(), kind); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, store, kind)
	}
}

// CartCheckout hands the collection to the checkout collaborator. The cart
// is left intact; the client clears it once it has shown the confirmation.
func CartCheckout(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := cartKindFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := userStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := store.Checkout(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
