package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rahulpatwa/bookbazaar-backend/api/middleware"
	"github.com/rahulpatwa/bookbazaar-backend/api/responses"
	"github.com/rahulpatwa/bookbazaar-backend/api/validators"
	"github.com/rahulpatwa/bookbazaar-backend/internal/catalog"
	"github.com/rahulpatwa/bookbazaar-backend/internal/wizard"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
)

// listingFormPayload mirrors the wizard's form values as the console
// submits them. GroupBuy is a tri-state string, never a boolean, so an
// untouched toggle is distinguishable from an explicit "off".
type listingFormPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	PriceCents  int64    `json:"price_cents"`
	Brand       string   `json:"brand"`
	ImageURLs   []string `json:"image_urls"`
	GroupBuy    string   `json:"group_buy" validate:"omitempty,oneof=unset on off"`
	Stock       int      `json:"stock"`
	Tags        []string `json:"tags"`
}

func (p listingFormPayload) toFormValues() (wizard.FormValues, error) {
	groupBuy, err := enums.ParseTriState(p.GroupBuy)
	if err != nil {
		return wizard.FormValues{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid group-buy value")
	}
	return wizard.FormValues{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Brand:       p.Brand,
		ImageURLs:   p.ImageURLs,
		GroupBuy:    groupBuy,
		Stock:       p.Stock,
	}, nil
}

type wizardStateResponse struct {
	Completed   []enums.ListingTab `json:"completed"`
	MissingTabs []enums.ListingTab `json:"missing_tabs"`
	IsReady     bool               `json:"is_ready"`
}

func wizardState(v *wizard.Validator) wizardStateResponse {
	completed := []enums.ListingTab{}
	for _, tab := range enums.ListingTabOrder {
		if v.Completed(tab) {
			completed = append(completed, tab)
		}
	}
	return wizardStateResponse{
		Completed:   completed,
		MissingTabs: v.MissingTabs(),
		IsReady:     v.IsReady(),
	}
}

// ListingEvaluate recomputes every tab's completion for the submitted form
// values. The wizard state is derived, never stored server-side, so the
// console can re-ask after any field change.
func ListingEvaluate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload listingFormPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		values, err := payload.toFormValues()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		v := wizard.New()
		v.EvaluateAll(values)
		responses.WriteSuccess(w, wizardState(v))
	}
}

// ListingSubmit creates the product listing, rejecting incomplete forms
// with the enumerated missing tabs.
func ListingSubmit(catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID := middleware.UserIDFromContext(r.Context())
		if sellerID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing"))
			return
		}

		var payload listingFormPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		values, err := payload.toFormValues()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.CreateProduct(r.Context(), sellerID, catalog.ProductInput{
			Form: values,
			Tags: payload.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}
