package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/api/middleware"
	"github.com/rahulpatwa/bookbazaar-backend/api/responses"
	"github.com/rahulpatwa/bookbazaar-backend/api/validators"
	"github.com/rahulpatwa/bookbazaar-backend/internal/catalog"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

type createBookRequest struct {
	Title          string     `json:"title" validate:"required"`
	Author         string     `json:"author" validate:"required"`
	ISBN           string     `json:"isbn"`
	PriceCents     int64      `json:"price_cents" validate:"required,min=1"`
	RentPriceCents *int64     `json:"rent_price_cents"`
	LibraryID      *uuid.UUID `json:"library_id"`
	Genres         []string   `json:"genres"`
}

type createEbookRequest struct {
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"required,min=1"`
	FileURL    string `json:"file_url"`
	SizeBytes  int64  `json:"size_bytes"`
}

func sellerFromRequest(r *http.Request) (uuid.UUID, error) {
	sellerID := middleware.UserIDFromContext(r.Context())
	if sellerID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return sellerID, nil
}

// BookCreate registers a physical-book listing.
func BookCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		book, err := svc.CreateBook(r.Context(), sellerID, catalog.BookInput{
			Title:          payload.Title,
			Author:         payload.Author,
			ISBN:           payload.ISBN,
			PriceCents:     payload.PriceCents,
			RentPriceCents: payload.RentPriceCents,
			LibraryID:      payload.LibraryID,
			Genres:         payload.Genres,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, book)
	}
}

// EbookCreate registers a digital-title listing.
func EbookCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createEbookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ebook, err := svc.CreateEbook(r.Context(), sellerID, catalog.EbookInput{
			Title:      payload.Title,
			Author:     payload.Author,
			PriceCents: payload.PriceCents,
			FileURL:    payload.FileURL,
			SizeBytes:  payload.SizeBytes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ebook)
	}
}

// BookList returns books, optionally narrowed by library or genre.
func BookList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := catalog.BookFilters{
			Genre:    r.URL.Query().Get("genre"),
			Rentable: r.URL.Query().Get("rentable") == "true",
		}
		if raw := r.URL.Query().Get("library_id"); raw != "" {
			libraryID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid library id"))
				return
			}
			filters.LibraryID = &libraryID
		}

		books, err := svc.ListBooks(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, books)
	}
}

// EbookList returns all digital titles.
func EbookList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ebooks, err := svc.ListEbooks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ebooks)
	}
}

// ProductGet returns a single wizard-created listing.
func ProductGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// SellerProductList returns the caller's own listings.
func SellerProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := sellerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := svc.ListProductsBySeller(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
