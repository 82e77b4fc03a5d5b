package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shopyard/shopyard-backend/api/responses"
	"github.com/shopyard/shopyard-backend/api/validators"
	"github.com/shopyard/shopyard-backend/internal/products"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/logger"
)

// ListProducts serves the filtered, cursor-paginated catalog browse endpoint.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := parseListProductsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct returns a live product with its reviews and rating summary.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		result, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseListProductsQuery(r *http.Request) (products.ListProductsInput, error) {
	var input products.ListProductsInput

	page, err := validators.ParsePagination(r)
	if err != nil {
		return input, err
	}

	priceMin, err := validators.ParseQueryDecimal(r, "price_min")
	if err != nil {
		return input, err
	}
	priceMax, err := validators.ParseQueryDecimal(r, "price_max")
	if err != nil {
		return input, err
	}
	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return input, err
	}

	query := r.URL.Query()
	input.Pagination = page
	input.Filters = products.ProductListFilters{
		CategorySlug: strings.TrimSpace(query.Get("category")),
		SellerSlug:   strings.TrimSpace(query.Get("seller")),
		PriceMin:     priceMin,
		PriceMax:     priceMax,
		InStockOnly:  inStock,
		Query:        strings.TrimSpace(query.Get("q")),
	}
	return input, nil
}
