package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopyard/shopyard-backend/internal/reviews"
)

// SellerSummary is the storefront projection embedded in product payloads.
type SellerSummary struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	Slug         string    `json:"slug"`
}

// CategorySummary is the category projection embedded in product payloads.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ProductSummary is the list-item projection returned by the browse endpoint.
type ProductSummary struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	PriceOld     *decimal.Decimal `json:"price_old,omitempty"`
	PriceCurrent decimal.Decimal  `json:"price_current"`
	InStock      int              `json:"in_stock"`
	Image1       string           `json:"image_1"`
	Rating       float64          `json:"rating"`
	NumReviews   int              `json:"num_reviews"`
	Seller       *SellerSummary   `json:"seller,omitempty"`
	Category     CategorySummary  `json:"category"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductDetail extends the summary with description, remaining images, and reviews.
type ProductDetail struct {
	ProductSummary
	Description string              `json:"description"`
	Image2      *string             `json:"image_2,omitempty"`
	Image3      *string             `json:"image_3,omitempty"`
	Reviews     []reviews.ReviewDTO `json:"reviews"`
}

// ProductListResult is the paginated browse response.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// CreateProductRequest is the payload sellers submit to list a new item.
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description"`
	CategorySlug string           `json:"category" validate:"required"`
	PriceOld     *decimal.Decimal `json:"price_old,omitempty"`
	PriceCurrent decimal.Decimal  `json:"price_current" validate:"required"`
	InStock      *int             `json:"in_stock,omitempty" validate:"omitempty,min=0"`
	Image1       string           `json:"image_1" validate:"required,url"`
	Image2       *string          `json:"image_2,omitempty" validate:"omitempty,url"`
	Image3       *string          `json:"image_3,omitempty" validate:"omitempty,url"`
}

// UpdateProductRequest carries the mutable product fields.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	CategorySlug *string          `json:"category,omitempty"`
	PriceOld     *decimal.Decimal `json:"price_old,omitempty"`
	PriceCurrent *decimal.Decimal `json:"price_current,omitempty"`
	InStock      *int             `json:"in_stock,omitempty" validate:"omitempty,min=0"`
	Image1       *string          `json:"image_1,omitempty" validate:"omitempty,url"`
	Image2       *string          `json:"image_2,omitempty" validate:"omitempty,url"`
	Image3       *string          `json:"image_3,omitempty" validate:"omitempty,url"`
}
