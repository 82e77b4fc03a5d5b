package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopyard/shopyard-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	CategorySlug string           `json:"category,omitempty"`
	SellerSlug   string           `json:"seller,omitempty"`
	PriceMin     *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax     *decimal.Decimal `json:"price_max,omitempty"`
	InStockOnly  bool             `json:"in_stock,omitempty"`
	Query        string           `json:"q,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate and filter the catalog.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
	// SellerID scopes the listing to one storefront and lifts the live-only
	// restriction so sellers can see their own soft-deleted items.
	SellerID       *uuid.UUID
	IncludeDeleted bool
}
