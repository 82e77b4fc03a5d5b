package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopyard/shopyard-backend/api/responses"
	"github.com/shopyard/shopyard-backend/api/validators"
	"github.com/shopyard/shopyard-backend/internal/products"
	"github.com/shopyard/shopyard-backend/internal/sellers"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/logger"
)

// ListSellers returns every storefront ordered by business name.
func ListSellers(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		result, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SellerDetail is the storefront page payload: the profile plus a page of its
// live products.
type SellerDetail struct {
	Seller     *sellers.SellerDTO        `json:"seller"`
	Products   []products.ProductSummary `json:"products"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

// GetSeller looks up a storefront by slug and lists its catalog.
func GetSeller(svc sellers.Service, productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || productSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		slug := chi.URLParam(r, "slug")
		seller, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := productSvc.List(r.Context(), products.ListProductsInput{
			Filters:    products.ProductListFilters{SellerSlug: slug},
			Pagination: page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, SellerDetail{
			Seller:     seller,
			Products:   listing.Products,
			NextCursor: listing.NextCursor,
		})
	}
}
