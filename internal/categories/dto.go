package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopyard/shopyard-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for a product category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryRequest is the payload accepted by the create endpoint.
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromModels(items []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
