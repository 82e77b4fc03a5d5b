package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// CartProduct is the product projection embedded in cart payloads.
type CartProduct struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	PriceCurrent decimal.Decimal `json:"price_current"`
	InStock      int             `json:"in_stock"`
	Image1       string          `json:"image_1"`
}

// CartItemDTO is one cart line with its extended total.
type CartItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	Product   CartProduct     `json:"product"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CartDTO is the full cart payload with aggregate totals.
type CartDTO struct {
	Items         []CartItemDTO   `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// ToggleCartRequest sets the absolute quantity for one product; zero removes it.
type ToggleCartRequest struct {
	ProductSlug string `json:"product" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=0"`
}

// ToggleOutcome names what the toggle did to the cart line.
type ToggleOutcome string

const (
	OutcomeAdded   ToggleOutcome = "Added"
	OutcomeUpdated ToggleOutcome = "Updated"
	OutcomeRemoved ToggleOutcome = "Removed"
)

// ToggleResult reports the outcome plus the surviving line, nil when removed.
type ToggleResult struct {
	Outcome ToggleOutcome `json:"outcome"`
	Item    *CartItemDTO  `json:"item"`
}

func itemFromModel(item *models.OrderItem) *CartItemDTO {
	if item == nil {
		return nil
	}
	dto := &CartItemDTO{
		ID:        item.ID,
		Quantity:  item.Quantity,
		Total:     item.Total(),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.Product != nil {
		dto.Product = CartProduct{
			ID:           item.Product.ID,
			Name:         item.Product.Name,
			Slug:         item.Product.Slug,
			PriceCurrent: item.Product.PriceCurrent,
			InStock:      item.Product.InStock,
			Image1:       item.Product.Image1,
		}
	}
	return dto
}
